// Package onboarding covers how accounts and workspaces come to exist:
// admin-driven tenant creation with an owner invitation, invitation
// validation and completion, self-serve signup, and the profile
// self-heal for identities that lost their profile document.
package onboarding
