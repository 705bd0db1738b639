package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"assistix-backend-go/internal/db"
	"assistix-backend-go/internal/models"
)

// retiredCategories are values from an earlier product iteration. Requests
// still carrying them (or missing a city entirely) are stale fixtures and
// get cleaned up before any new seeding decision.
var retiredCategories = map[string]bool{
	"Errands":   true,
	"Household": true,
}

var demoUsers = []models.User{
	{
		UID:        "demo-user-1",
		Name:       "Sarah Chen",
		Email:      "sarah.chen@demo.com",
		PhotoURL:   "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100&h=100&fit=crop&crop=face",
		Skills:     []string{"React", "TypeScript", "UI/UX"},
		HelpsGiven: 15,
		ActiveCity: "bilaspur_cg",
	},
	{
		UID:        "demo-user-2",
		Name:       "Marcus Johnson",
		Email:      "marcus.j@demo.com",
		PhotoURL:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop&crop=face",
		Skills:     []string{"Python", "Machine Learning", "Data Analysis"},
		HelpsGiven: 23,
		ActiveCity: "bilaspur_cg",
	},
	{
		UID:        "demo-user-3",
		Name:       "Emily Rodriguez",
		Email:      "emily.r@demo.com",
		PhotoURL:   "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100&h=100&fit=crop&crop=face",
		Skills:     []string{"Graphic Design", "Branding", "Illustration"},
		HelpsGiven: 31,
		ActiveCity: "koni_bilaspur",
	},
	{
		UID:        "demo-user-4",
		Name:       "David Kim",
		Email:      "david.kim@demo.com",
		PhotoURL:   "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=100&h=100&fit=crop&crop=face",
		Skills:     []string{"Content Writing", "SEO", "Copywriting"},
		HelpsGiven: 18,
		ActiveCity: "bilaspur_cg",
	},
	{
		UID:        "demo-user-5",
		Name:       "Priya Patel",
		Email:      "priya.p@demo.com",
		PhotoURL:   "https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=100&h=100&fit=crop&crop=face",
		Skills:     []string{"Financial Planning", "Accounting", "Tax Advisory"},
		HelpsGiven: 12,
		ActiveCity: "koni_bilaspur",
	},
}

var demoRequests = []models.Request{
	{
		Title:       "Need help building a React dashboard",
		Description: "Looking for someone experienced with React and charting libraries to help build an analytics dashboard. Should include real-time data visualization and responsive design.",
		Category:    "Technology",
		Payment:     150,
		CreatedBy:   "demo-user-1",
		Status:      models.StatusOpen,
		City:        "bilaspur_cg",
	},
	{
		Title:       "Logo design for my startup",
		Description: "Need a modern, minimalist logo for a tech startup. We are in the AI/ML space and want something that conveys innovation and trust.",
		Category:    "Design",
		Payment:     200,
		CreatedBy:   "demo-user-2",
		Status:      models.StatusInReview,
		City:        "bilaspur_cg",
	},
	{
		Title:       "Write blog posts about cryptocurrency",
		Description: "Looking for a writer who understands blockchain and crypto to write 5 engaging blog posts. Each should be around 1000 words with SEO optimization.",
		Category:    "Writing",
		Payment:     250,
		CreatedBy:   "demo-user-3",
		Status:      models.StatusOpen,
		City:        "koni_bilaspur",
	},
	{
		Title:       "Social media marketing strategy",
		Description: "Need help developing a 3-month social media strategy for our e-commerce brand. Should include content calendar and engagement tactics.",
		Category:    "Marketing",
		Payment:     300,
		CreatedBy:   "demo-user-4",
		Status:      models.StatusOpen,
		City:        "bilaspur_cg",
	},
	{
		Title:       "Tax preparation assistance",
		Description: "Looking for someone to help with small business tax preparation. Need guidance on deductions and quarterly filing.",
		Category:    "Finance",
		Payment:     175,
		CreatedBy:   "demo-user-5",
		Status:      models.StatusAssigned,
		City:        "koni_bilaspur",
	},
	{
		Title:       "Mobile app UI/UX review",
		Description: "Need an experienced designer to review our mobile app mockups and provide feedback on usability and visual design improvements.",
		Category:    "Design",
		Payment:     100,
		CreatedBy:   "demo-user-1",
		Status:      models.StatusOpen,
		City:        "bilaspur_cg",
	},
	{
		Title:       "Python script for data automation",
		Description: "Need help creating a Python script that automates data extraction from multiple APIs and generates weekly reports.",
		Category:    "Technology",
		Payment:     180,
		CreatedBy:   "demo-user-2",
		Status:      models.StatusInReview,
		City:        "bilaspur_cg",
	},
	{
		Title:       "Legal document review",
		Description: "Looking for someone with legal background to review our terms of service and privacy policy documents.",
		Category:    "Legal",
		Payment:     225,
		CreatedBy:   "demo-user-3",
		Status:      models.StatusOpen,
		City:        "koni_bilaspur",
	},
}

// seedService implements the SeedService interface.
type seedService struct {
	userRepo    db.UserRepository
	requestRepo db.RequestRepository
	logger      *zap.Logger

	mu     sync.Mutex
	seeded bool
}

// NewSeedService creates a new SeedService instance.
func NewSeedService(userRepo db.UserRepository, requestRepo db.RequestRepository, logger *zap.Logger) SeedService {
	return &seedService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// SeedDemoData populates demo fixtures at most once per process. When the
// collection already holds requests, only the legacy cleanup pass runs.
func (s *seedService) SeedDemoData(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeded {
		return false, nil
	}
	s.seeded = true

	populated, err := s.requestRepo.Any(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to probe requests collection for seeding: %w", err)
	}
	if populated {
		s.logger.Info("Demo data already exists, running legacy fixture cleanup only")
		if err := s.cleanupLegacyFixtures(ctx); err != nil {
			return false, err
		}
		return false, nil
	}

	for i := range demoUsers {
		user := demoUsers[i]
		user.CreatedAt = time.Now().UTC()
		// Upsert via merge, matching how fixtures have always been written.
		if err := s.userRepo.Update(ctx, &user); err != nil {
			return false, fmt.Errorf("failed to seed demo user '%s': %w", user.UID, err)
		}
	}
	for i := range demoRequests {
		request := demoRequests[i]
		request.CreatedAt = time.Now().UTC()
		if _, err := s.requestRepo.Create(ctx, &request); err != nil {
			return false, fmt.Errorf("failed to seed demo request '%s': %w", request.Title, err)
		}
	}

	s.logger.Info("Demo data seeded successfully",
		zap.Int("users", len(demoUsers)),
		zap.Int("requests", len(demoRequests)))
	return true, nil
}

// cleanupLegacyFixtures deletes requests from a previous fixture generation,
// identified by a missing city field or a retired category value. This is
// migration-by-convention, not a versioned schema migration.
func (s *seedService) cleanupLegacyFixtures(ctx context.Context) error {
	requests, err := s.requestRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan requests for legacy cleanup: %w", err)
	}
	removed := 0
	for _, request := range requests {
		if request.City != "" && !retiredCategories[request.Category] {
			continue
		}
		if err := s.requestRepo.Delete(ctx, request.ID); err != nil {
			return fmt.Errorf("failed to delete legacy request '%s': %w", request.ID, err)
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("Removed legacy fixture requests", zap.Int("count", removed))
	}
	return nil
}
