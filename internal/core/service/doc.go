// Package service provides the key/value store behind the nvram tool.
//
// A Store holds one open format session and one in-memory entry list per
// role. Reads are served from the list; writes mark the role dirty and are
// persisted by Commit. A Store is not safe for concurrent use.
package service
