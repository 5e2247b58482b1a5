// Package identity abstracts the external authentication provider that
// owns credentials. The application never stores passwords; it creates
// identities at the provider and keeps only the provider-issued ID on
// the user profile.
package identity
