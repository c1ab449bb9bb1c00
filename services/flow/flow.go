// Package flow holds the catalog browsing and lead submission flow shared by
// every presentation layer: the Catalog controller, the Lead intake
// controller and the Navigator that scrolls between page sections.
//
// Controllers are safe for concurrent use. Network work runs on goroutines
// and never blocks the caller; results are published through Subscribe.
package flow

import (
	"context"
	"errors"

	"techforge_app_go/models"
)

// ListingResult is what a listing fetch returns for one category
type ListingResult struct {
	Success  bool
	Listings []models.ProjectListing
}

// ListingFetcher retrieves the listings of one category
type ListingFetcher interface {
	FetchListings(ctx context.Context, categoryID string) (ListingResult, error)
}

// SubmitResult is the outcome of a lead submission
type SubmitResult struct {
	OK bool
	ID string
}

// LeadSubmitter delivers a completed lead form
type LeadSubmitter interface {
	SubmitLead(ctx context.Context, form LeadForm) (SubmitResult, error)
}

// ListingFetcherFunc adapts a function to ListingFetcher
type ListingFetcherFunc func(ctx context.Context, categoryID string) (ListingResult, error)

func (f ListingFetcherFunc) FetchListings(ctx context.Context, categoryID string) (ListingResult, error) {
	return f(ctx, categoryID)
}

// LeadSubmitterFunc adapts a function to LeadSubmitter
type LeadSubmitterFunc func(ctx context.Context, form LeadForm) (SubmitResult, error)

func (f LeadSubmitterFunc) SubmitLead(ctx context.Context, form LeadForm) (SubmitResult, error) {
	return f(ctx, form)
}

var (
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownField     = errors.New("unknown lead form field")
	ErrSubmitInProgress = errors.New("submission already in progress")
)
