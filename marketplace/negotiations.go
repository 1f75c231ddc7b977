package marketplace

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
)

// NegotiationService covers the /negotiations endpoint group.
type NegotiationService struct {
	gw *gateway.Client
}

// MakeOffer submits a price offer inside a chat.
func (s *NegotiationService) MakeOffer(ctx context.Context, chatID int64, req NegotiationRequest) (*Negotiation, error) {
	var out Negotiation
	if err := s.gw.Post(ctx, fmt.Sprintf("/negotiations/chats/%d/offer", chatID), req, &out); err != nil {
		return nil, errors.Wrap(err, "[NegotiationService.MakeOffer]")
	}
	return &out, nil
}

// Accept takes the offer.
func (s *NegotiationService) Accept(ctx context.Context, id int64) (*Negotiation, error) {
	var out Negotiation
	if err := s.gw.Post(ctx, fmt.Sprintf("/negotiations/%d/accept", id), nil, &out); err != nil {
		return nil, errors.Wrap(err, "[NegotiationService.Accept]")
	}
	return &out, nil
}

// Reject declines the offer with an optional reason.
func (s *NegotiationService) Reject(ctx context.Context, id int64, reason string) (*Negotiation, error) {
	var out Negotiation
	err := s.gw.Do(ctx, gateway.Request{
		Method: "POST",
		Path:   fmt.Sprintf("/negotiations/%d/reject", id),
		Query:  url.Values{"reason": []string{reason}},
	}, &out)
	if err != nil {
		return nil, errors.Wrap(err, "[NegotiationService.Reject]")
	}
	return &out, nil
}

// ForChat lists a chat's negotiation history.
func (s *NegotiationService) ForChat(ctx context.Context, chatID int64) ([]Negotiation, error) {
	var out []Negotiation
	if err := s.gw.Get(ctx, fmt.Sprintf("/negotiations/chats/%d", chatID), nil, &out); err != nil {
		return nil, errors.Wrap(err, "[NegotiationService.ForChat]")
	}
	return out, nil
}

// PendingOffers lists offers awaiting the caller's response.
func (s *NegotiationService) PendingOffers(ctx context.Context) ([]Negotiation, error) {
	var out []Negotiation
	if err := s.gw.Get(ctx, "/negotiations/pending-offers", nil, &out); err != nil {
		return nil, errors.Wrap(err, "[NegotiationService.PendingOffers]")
	}
	return out, nil
}
