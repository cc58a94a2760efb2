package server

import (
	"context"
	"encoding/json"
	"log"

	"wishwell/internal/middleware"
	"wishwell/internal/models"
)

// Event type constants prevent typos in event names.
const (
	EventWishCreated   = "wish_created"
	EventWishUpdated   = "wish_updated"
	EventWishDeleted   = "wish_deleted"
	EventWishReserved  = "wish_reserved"
	EventWishFulfilled = "wish_fulfilled"
	EventWishReopened  = "wish_reopened"

	EventTagCreated = "tag_created"
	EventTagUpdated = "tag_updated"
	EventTagDeleted = "tag_deleted"

	EventFriendRequestSent     = "friend_request_sent"
	EventFriendRequestReceived = "friend_request_received"
	EventFriendRequestAccepted = "friend_request_accepted"
	EventFriendRequestRejected = "friend_request_rejected"
	EventFriendRemoved         = "friend_removed"
)

func (s *Server) publishUserEvent(userID uint, eventType string, payload interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	middleware.RealtimeEvents.WithLabelValues(eventType).Inc()
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, message); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
	}
}

func (s *Server) publishBroadcastEvent(eventType string, payload interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	middleware.RealtimeEvents.WithLabelValues(eventType).Inc()
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.BroadcastAll(message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishBroadcast(context.Background(), message); err != nil {
			log.Printf("failed to publish %s broadcast event: %v", eventType, err)
		}
	}
}

// publishWishChange sends a wish row change to the owner's channel.
func (s *Server) publishWishChange(eventType string, wish *models.Wish) {
	s.publishUserEvent(wish.UserID, eventType, wish)
}

// publishWishDeleted notifies the owner and additionally broadcasts the bare
// id to everyone: delete events cannot be filtered by owner, so mirrors
// blind-remove by id.
func (s *Server) publishWishDeleted(wish *models.Wish) {
	s.publishUserEvent(wish.UserID, EventWishDeleted, wish)
	s.publishBroadcastEvent(EventWishDeleted, map[string]interface{}{"id": wish.ID})
}

// publishEdgeEvent sends a friend edge change to both endpoints, with a
// direction-appropriate event type for the requester and recipient.
func (s *Server) publishEdgeEvent(requesterEvent, recipientEvent string, edge *models.FriendEdge) {
	s.publishUserEvent(edge.RequesterID, requesterEvent, edge)
	s.publishUserEvent(edge.RecipientID, recipientEvent, edge)
}
