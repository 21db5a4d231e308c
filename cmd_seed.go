package main

import (
	"github.com/spf13/cobra"

	"github.com/aamoria/wellness-api/journey"
	"github.com/aamoria/wellness-api/repos"
	"github.com/aamoria/wellness-api/seed"
)

var resetQuiz bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the bundled categories, quiz and journeys",
	Long: `Load the bundled categories, quiz questions and journeys.

Existing journeys keep products that are not in the seed data. Quiz
questions are only written into an empty quiz unless --reset-quiz is set.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&resetQuiz, "reset-quiz", false, "Replace all stored quiz questions")
}

func runSeed(cmd *cobra.Command, args []string) error {
	env, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDB(env, log)
	if err != nil {
		return err
	}
	data, err := seed.Load()
	if err != nil {
		return err
	}

	products := repos.NewProductRepo(db, log)
	svc := journey.NewService(repos.NewJourneyRepo(db, log), products, log)
	seeder := seed.NewSeeder(products, repos.NewQuizRepo(db, log), svc, log)
	return seeder.Apply(cmd.Context(), data, seed.Options{ResetQuiz: resetQuiz})
}
