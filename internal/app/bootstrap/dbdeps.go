// internal/app/bootstrap/dbdeps.go
package bootstrap

import "go.mongodb.org/mongo-driver/mongo"

// DBDeps holds database dependencies for this WAFFLE app.
//
// It is created in ConnectDB and passed to the subsequent lifecycle hooks:
// EnsureSchema, Startup, BuildHandler, and Shutdown. The Shutdown hook is
// responsible for closing these connections gracefully.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
}
