// Package queries contains read-only operations. Handlers read through
// ports.Repositories outside any unit of work, so they work unchanged on
// every store, and return views that never expose credential secrets.
package queries
