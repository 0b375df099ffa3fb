package config

import "time"

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewRepositoryForTest(backend, postgresDSN, projectID string) *Repository {
	return &Repository{backend: backend, postgresDSN: postgresDSN, projectID: projectID}
}

func NewAzureADForTest(tenantID, clientID, clientSecret, redirectURL, noAuthUser string) *AzureAD {
	return &AzureAD{
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		noAuthUser:   noAuthUser,
	}
}

func NewServerForTest(allowedOrigins string, rateLimit int, rateWindow time.Duration) *Server {
	return &Server{allowedOrigins: allowedOrigins, rateLimit: rateLimit, rateWindow: rateWindow}
}

func NewCatalogForTest(path string) *Catalog {
	return &Catalog{path: path}
}
