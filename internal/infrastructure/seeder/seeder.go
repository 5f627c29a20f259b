package seeder

import (
	"log"

	"github.com/nbagirov/tapreflex/internal/domain"
)

// Seeder handles database seeding operations
type Seeder struct {
	profileUC domain.ProfileUseCase
}

// NewSeeder creates a new seeder instance
func NewSeeder(profileUC domain.ProfileUseCase) *Seeder {
	return &Seeder{
		profileUC: profileUC,
	}
}

// SeedPlayers seeds the database with demo player profiles and a few
// recorded rounds so leaderboards have data out of the box.
func (s *Seeder) SeedPlayers() error {
	log.Printf("Seeding players...")

	players := []struct {
		userID   string
		email    string
		nickname string
		rounds   []domain.RoundSubmission
	}{
		{
			userID:   "seed-aurora",
			email:    "aurora@example.com",
			nickname: "Aurora",
			rounds: []domain.RoundSubmission{
				{Level: domain.Targets10, GameType: domain.GameTypeTap, Score: 9750, Time: 5.0, Stars: 3, Moves: 10},
				{Level: domain.Targets20, GameType: domain.GameTypeTap, Score: 18400, Time: 12.4, Stars: 3, Moves: 21},
			},
		},
		{
			userID:   "seed-blitz",
			email:    "blitz@example.com",
			nickname: "Blitz",
			rounds: []domain.RoundSubmission{
				{Level: domain.Targets10, GameType: domain.GameTypeTap, Score: 9150, Time: 12.0, Stars: 3, Moves: 15},
			},
		},
		{
			userID:   "seed-comet",
			email:    "comet@example.com",
			nickname: "Comet",
			rounds: []domain.RoundSubmission{
				{Level: domain.Targets30, GameType: domain.GameTypeTap, Score: 26100, Time: 24.8, Stars: 2, Moves: 34},
				{Level: domain.Targets10, GameType: domain.GameTypeTap, Score: 7500, Time: 50.0, Stars: 2, Moves: 10},
			},
		},
		{
			userID:   "seed-drifter",
			email:    "drifter@example.com",
			nickname: "Drifter",
			rounds:   nil,
		},
	}

	log.Printf("Attempting to seed players...")

	for _, p := range players {
		log.Printf("Processing player...")

		existing, err := s.profileUC.GetProfile(p.userID)
		if err != nil {
			log.Printf("Error checking existing player, skipping.")
			continue
		}

		if existing != nil {
			log.Printf("Player already exists, skipping.")
			continue
		}

		if _, err := s.profileUC.CreateProfile(p.userID, p.email, p.nickname); err != nil {
			log.Printf("Error creating player.")
			return err
		}

		for _, round := range p.rounds {
			if err := s.profileUC.RecordRoundResult(p.userID, round); err != nil {
				log.Printf("Error recording seed round.")
				return err
			}
		}
		log.Printf("Successfully created player.")
	}

	log.Printf("Player seeding completed successfully")
	return nil
}
