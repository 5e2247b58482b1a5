// Package user models human accounts: profiles, capability roles, and
// account status, together with their persistence stores.
//
// A profile belongs to at most one tenant. Profiles created through the
// invitation workflow start in the invited state and carry a one-time
// invitation token; self-registered profiles start active and
// tenantless until they finish workspace setup.
package user
