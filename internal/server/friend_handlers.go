package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFriends handles GET /api/friends
//
// Returns every edge the caller is on with the counterparty profile
// attached: incoming pending requests first, then newest-first. Rejected
// edges are omitted unless include_rejected=true.
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	includeRejected := c.QueryBool("include_rejected", false)

	rels, err := s.friendService.ListRelationships(c.Context(), userID, includeRejected)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"relationships": rels})
}

// SendFriendRequest handles POST /api/friends/requests/:userId
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	edge, err := s.friendService.SendRequest(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEdgeEvent(EventFriendRequestSent, EventFriendRequestReceived, edge)
	return c.Status(fiber.StatusCreated).JSON(edge)
}

// AcceptFriendRequest handles POST /api/friends/requests/:requestId/accept
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	edge, err := s.friendService.Accept(c.Context(), userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEdgeEvent(EventFriendRequestAccepted, EventFriendRequestAccepted, edge)
	return c.JSON(edge)
}

// RejectFriendRequest handles POST /api/friends/requests/:requestId/reject
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	edge, err := s.friendService.Reject(c.Context(), userID, requestID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// Only the requester learns their request was declined; the recipient
	// acted on it themselves.
	s.publishUserEvent(edge.RequesterID, EventFriendRequestRejected, edge)
	return c.JSON(edge)
}

// RemoveFriendEdge handles DELETE /api/friends/:edgeId
func (s *Server) RemoveFriendEdge(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	edgeID, err := s.parseID(c, "edgeId")
	if err != nil {
		return nil
	}

	edge, err := s.friendService.Remove(c.Context(), userID, edgeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEdgeEvent(EventFriendRemoved, EventFriendRemoved, edge)
	return c.JSON(fiber.Map{"message": "Connection removed"})
}
