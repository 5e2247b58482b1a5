// Package entitlement computes the feature-access matrix a session is
// granted from its subscription state and role set.
//
// Evaluation is a pure function of its inputs and a clock value; the
// matrix is a derived view, recomputed whenever the subscription
// document changes, and never persisted.
package entitlement
