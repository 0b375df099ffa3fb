package firestore

import "github.com/m-mizutani/fireconf"

// IndexConfig returns the composite indexes required by the queries of this package
func IndexConfig(collectionPrefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: CollectionName(collectionPrefix),
				Indexes: []fireconf.Index{
					// List: user_id ASC, created_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "user_id", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
