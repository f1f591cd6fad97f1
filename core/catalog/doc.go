// Package catalog captures live MySQL schemas as value graphs.
//
// It wraps GORM to open the connection and reads information_schema to build
// a db.mysql.Schema object holding its tables (with columns and indices) and
// stored routines. Object identities are the dotted qualified names, so two
// captures of the same schema line up when they are compared.
//
// # Connect
//
// Connect opens a pooled MySQL connection and verifies it with a ping bounded
// by the configured timeout.
//
// # Inspection
//
//	db, err := catalog.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	schema, err := catalog.NewInspector(db).LoadSchema(ctx, "shop")
//
// # Cache
//
// Cache keeps captured schemas for a TTL and collapses concurrent loads of
// the same schema into one query round.
package catalog
