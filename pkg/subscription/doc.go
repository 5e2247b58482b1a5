// Package subscription models billing state for tenants: the plan
// catalog, the Subscription value embedded in tenant and profile
// documents, and the lifecycle transitions between trial, paid, and
// starter states.
//
// Lifecycle constructors are pure given a clock value; persistence is
// left to the callers (onboarding stamps trials, the payment webhook
// reconciler activates paid plans, the migrator backfills starter
// subscriptions).
package subscription
