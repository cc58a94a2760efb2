package service

import (
	"context"
	"sort"
	"unicode/utf8"

	"wishwell/internal/models"
	"wishwell/internal/repository"
)

// searchQueryMinLength is the shortest query candidate search runs for.
// Shorter queries return nothing rather than matching half the user table.
const searchQueryMinLength = 3

const searchResultLimit = 20

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// Relationship is a friend edge as seen by one of its two users.
type Relationship struct {
	EdgeID       uint                    `json:"edge_id"`
	Status       models.FriendEdgeStatus `json:"status"`
	Direction    string                  `json:"direction"` // "sent" or "received"
	Counterparty models.Profile          `json:"counterparty"`
	CreatedAt    int64                   `json:"created_at"`
}

// SendRequest creates a pending edge from the caller to the target user.
// Any existing edge for the pair, whatever its status, blocks a new one.
func (s *FriendService) SendRequest(ctx context.Context, userID, targetUserID uint) (*models.FriendEdge, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send a friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetEdgeBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendEdgeStatusAccepted:
			return nil, models.NewValidationError("You are already friends")
		case models.FriendEdgeStatusPending:
			if existing.RequesterID == userID {
				return nil, models.NewValidationError("Friend request already sent")
			}
			return nil, models.NewValidationError("You already have a pending friend request from this user")
		default:
			return nil, models.NewValidationError("A previous request between you already exists")
		}
	}

	edge := &models.FriendEdge{
		RequesterID: userID,
		RecipientID: targetUserID,
		Status:      models.FriendEdgeStatusPending,
	}
	if err := s.friendRepo.Create(ctx, edge); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, edge.ID)
}

// Accept moves a pending request to accepted. Recipient only.
func (s *FriendService) Accept(ctx context.Context, userID, edgeID uint) (*models.FriendEdge, error) {
	return s.respond(ctx, userID, edgeID, models.FriendEdgeStatusAccepted)
}

// Reject moves a pending request to rejected. Recipient only. The edge is
// kept so the pair cannot immediately re-request each other.
func (s *FriendService) Reject(ctx context.Context, userID, edgeID uint) (*models.FriendEdge, error) {
	return s.respond(ctx, userID, edgeID, models.FriendEdgeStatusRejected)
}

func (s *FriendService) respond(ctx context.Context, userID, edgeID uint, status models.FriendEdgeStatus) (*models.FriendEdge, error) {
	edge, err := s.friendRepo.GetByID(ctx, edgeID)
	if err != nil {
		return nil, err
	}

	if edge.RecipientID != userID {
		return nil, models.NewUnauthorizedError("You can only respond to friend requests sent to you")
	}
	if edge.Status != models.FriendEdgeStatusPending {
		return nil, models.NewValidationError("Friend request is not pending")
	}

	if err := s.friendRepo.UpdateStatus(ctx, edgeID, status); err != nil {
		return nil, err
	}
	return s.friendRepo.GetByID(ctx, edgeID)
}

// Remove deletes an edge. Either party may remove it, whatever its status.
func (s *FriendService) Remove(ctx context.Context, userID, edgeID uint) (*models.FriendEdge, error) {
	edge, err := s.friendRepo.GetByID(ctx, edgeID)
	if err != nil {
		return nil, err
	}
	if !edge.Involves(userID) {
		return nil, models.NewUnauthorizedError("You can only remove your own friend connections")
	}
	if err := s.friendRepo.Delete(ctx, edgeID); err != nil {
		return nil, err
	}
	return edge, nil
}

// ListRelationships returns the caller's edges with the counterparty profile
// attached. Incoming pending requests sort first, then everything else by
// recency. Rejected edges are hidden unless asked for.
func (s *FriendService) ListRelationships(ctx context.Context, userID uint, includeRejected bool) ([]Relationship, error) {
	edges, err := s.friendRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rels := make([]Relationship, 0, len(edges))
	for _, e := range edges {
		if e.Status == models.FriendEdgeStatusRejected && !includeRejected {
			continue
		}
		direction := "received"
		if e.RequesterID == userID {
			direction = "sent"
		}
		rels = append(rels, Relationship{
			EdgeID:       e.ID,
			Status:       e.Status,
			Direction:    direction,
			Counterparty: e.Counterparty(userID),
			CreatedAt:    e.CreatedAt.Unix(),
		})
	}

	sort.SliceStable(rels, func(i, j int) bool {
		iInbox := rels[i].Status == models.FriendEdgeStatusPending && rels[i].Direction == "received"
		jInbox := rels[j].Status == models.FriendEdgeStatusPending && rels[j].Direction == "received"
		if iInbox != jInbox {
			return iInbox
		}
		return rels[i].CreatedAt > rels[j].CreatedAt
	})
	return rels, nil
}

// SearchCandidates finds users the caller could send a request to. Runs only
// for queries longer than two characters and excludes the caller plus anyone
// already connected by an edge of any status.
func (s *FriendService) SearchCandidates(ctx context.Context, userID uint, query string) ([]models.Profile, error) {
	if utf8.RuneCountInString(query) < searchQueryMinLength {
		return []models.Profile{}, nil
	}

	connected, err := s.friendRepo.ConnectedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[uint]struct{}, len(connected)+1)
	excluded[userID] = struct{}{}
	for _, id := range connected {
		excluded[id] = struct{}{}
	}

	users, err := s.userRepo.SearchByDisplayName(ctx, query, searchResultLimit+len(excluded))
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Profile, 0, len(users))
	for _, u := range users {
		if _, skip := excluded[u.ID]; skip {
			continue
		}
		candidates = append(candidates, u.Profile())
		if len(candidates) == searchResultLimit {
			break
		}
	}
	return candidates, nil
}
