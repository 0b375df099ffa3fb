package firestore_test

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airisk/pkg/repository/firestore"
)

func TestIndexConfig(t *testing.T) {
	cfg := firestore.IndexConfig("")
	gt.A(t, cfg.Collections).Length(1)
	gt.V(t, cfg.Collections[0].Name).Equal("assessments")

	idx := cfg.Collections[0].Indexes
	gt.A(t, idx).Length(1)
	gt.V(t, idx[0].Fields[0].Path).Equal("user_id")
	gt.V(t, idx[0].Fields[1].Path).Equal("created_at")
	gt.V(t, idx[0].Fields[1].Order).Equal(fireconf.OrderDescending)

	gt.V(t, firestore.IndexConfig("staging").Collections[0].Name).Equal("staging_assessments")
}
