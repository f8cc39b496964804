// Package user holds the User aggregate, its role and the public profile
// projection that is the only user shape allowed to leave the core.
package user
