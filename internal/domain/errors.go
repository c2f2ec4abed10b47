package domain

import "errors"

// ErrSubscriptionNotFound is returned for mutating calls against a user who
// has no subscription.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// ErrUnknownPreference is returned when a toggle name is not one of the five
// recognized keys.
var ErrUnknownPreference = errors.New("unknown preference")

// ErrUnknownCampaign is returned when a campaign name does not resolve.
var ErrUnknownCampaign = errors.New("unknown campaign")

// ErrNoSymbols is returned when a subscribe call carries no usable symbols
// after normalization.
var ErrNoSymbols = errors.New("no valid symbols")
