package marketplace

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/stoneridge/go-marketplace-client/gateway"
)

// ChatService covers the /chats endpoint group. Views poll these
// endpoints; the service itself is stateless.
type ChatService struct {
	gw *gateway.Client
}

// Start opens (or returns the existing) chat about a product.
func (s *ChatService) Start(ctx context.Context, productID int64) (*Chat, error) {
	var out Chat
	if err := s.gw.Post(ctx, fmt.Sprintf("/chats/start/%d", productID), nil, &out); err != nil {
		return nil, errors.Wrap(err, "[ChatService.Start]")
	}
	return &out, nil
}

// List pages the caller's chats, most recent activity first.
func (s *ChatService) List(ctx context.Context, page PageParams) (*Page[Chat], error) {
	var out Page[Chat]
	if err := s.gw.Get(ctx, "/chats", page.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[ChatService.List]")
	}
	return &out, nil
}

// Get fetches one chat with its recent messages.
func (s *ChatService) Get(ctx context.Context, id int64) (*Chat, error) {
	var out Chat
	if err := s.gw.Get(ctx, fmt.Sprintf("/chats/%d", id), nil, &out); err != nil {
		return nil, errors.Wrap(err, "[ChatService.Get]")
	}
	return &out, nil
}

// Messages pages a chat's message history.
func (s *ChatService) Messages(ctx context.Context, id int64, page PageParams) (*Page[ChatMessage], error) {
	var out Page[ChatMessage]
	if err := s.gw.Get(ctx, fmt.Sprintf("/chats/%d/messages", id), page.Values(), &out); err != nil {
		return nil, errors.Wrap(err, "[ChatService.Messages]")
	}
	return &out, nil
}

// Send posts a message into a chat.
func (s *ChatService) Send(ctx context.Context, id int64, content string) (*ChatMessage, error) {
	var out ChatMessage
	if err := s.gw.Post(ctx, fmt.Sprintf("/chats/%d/messages", id), SendMessageRequest{Content: content}, &out); err != nil {
		return nil, errors.Wrap(err, "[ChatService.Send]")
	}
	return &out, nil
}

// MarkRead clears the unread flag for the caller.
func (s *ChatService) MarkRead(ctx context.Context, id int64) error {
	err := s.gw.Post(ctx, fmt.Sprintf("/chats/%d/mark-read", id), nil, nil)
	return errors.Wrap(err, "[ChatService.MarkRead]")
}

// Close ends a chat.
func (s *ChatService) Close(ctx context.Context, id int64) error {
	err := s.gw.Post(ctx, fmt.Sprintf("/chats/%d/close", id), nil, nil)
	return errors.Wrap(err, "[ChatService.Close]")
}

// UnreadCount returns how many chats have unread messages, for the
// badge in the navigation.
func (s *ChatService) UnreadCount(ctx context.Context) (int, error) {
	var out int
	if err := s.gw.Get(ctx, "/chats/unread", nil, &out); err != nil {
		return 0, errors.Wrap(err, "[ChatService.UnreadCount]")
	}
	return out, nil
}
