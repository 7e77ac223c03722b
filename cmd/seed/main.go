package main

import (
	"log"
	"os"

	"steam-recs-be/internal/model"
	"steam-recs-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Seeds a small game catalog for local development. Embeddings are not
// seeded here; run the REST service and re-save each game (or POST them via
// the API) to enqueue embedding jobs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Game Catalog...")

	games := []model.Game{
		{
			SteamAppId:  "730",
			Title:       "Counter-Strike 2",
			Description: "The world's premier competitive FPS, rebuilt on Source 2.",
			Genres:      datatypes.NewJSONSlice([]string{"Action", "Free To Play"}),
			Tags:        datatypes.NewJSONSlice([]string{"FPS", "Shooter", "Multiplayer", "Competitive", "Tactical"}),
		},
		{
			SteamAppId:  "570",
			Title:       "Dota 2",
			Description: "Every day, millions of players worldwide enter battle as one of over a hundred Dota heroes.",
			Genres:      datatypes.NewJSONSlice([]string{"Action", "Strategy", "Free To Play"}),
			Tags:        datatypes.NewJSONSlice([]string{"MOBA", "Multiplayer", "Strategy", "Team-Based"}),
		},
		{
			SteamAppId:  "1086940",
			Title:       "Baldur's Gate 3",
			Description: "Gather your party and return to the Forgotten Realms in a tale of fellowship and betrayal.",
			Genres:      datatypes.NewJSONSlice([]string{"RPG", "Adventure", "Strategy"}),
			Tags:        datatypes.NewJSONSlice([]string{"RPG", "Story Rich", "Turn-Based Combat", "Fantasy", "Co-op"}),
		},
		{
			SteamAppId:  "292030",
			Title:       "The Witcher 3: Wild Hunt",
			Description: "As war rages on throughout the Northern Realms, you take on the greatest contract of your life.",
			Genres:      datatypes.NewJSONSlice([]string{"RPG"}),
			Tags:        datatypes.NewJSONSlice([]string{"Open World", "RPG", "Story Rich", "Fantasy", "Singleplayer"}),
		},
		{
			SteamAppId:  "1091500",
			Title:       "Cyberpunk 2077",
			Description: "An open-world, action-adventure RPG set in the megalopolis of Night City.",
			Genres:      datatypes.NewJSONSlice([]string{"RPG"}),
			Tags:        datatypes.NewJSONSlice([]string{"Open World", "RPG", "Sci-fi", "Futuristic", "Singleplayer"}),
		},
		{
			SteamAppId:  "105600",
			Title:       "Terraria",
			Description: "Dig, fight, explore, build! Nothing is impossible in this action-packed adventure game.",
			Genres:      datatypes.NewJSONSlice([]string{"Action", "Adventure", "Indie", "RPG"}),
			Tags:        datatypes.NewJSONSlice([]string{"Sandbox", "Survival", "2D", "Crafting", "Co-op"}),
		},
		{
			SteamAppId:  "413150",
			Title:       "Stardew Valley",
			Description: "You've inherited your grandfather's old farm plot in Stardew Valley.",
			Genres:      datatypes.NewJSONSlice([]string{"Indie", "RPG", "Simulation"}),
			Tags:        datatypes.NewJSONSlice([]string{"Farming Sim", "Life Sim", "Pixel Graphics", "Relaxing", "Co-op"}),
		},
		{
			SteamAppId:  "1245620",
			Title:       "Elden Ring",
			Description: "Rise, Tarnished, and be guided by grace to brandish the power of the Elden Ring.",
			Genres:      datatypes.NewJSONSlice([]string{"Action", "RPG"}),
			Tags:        datatypes.NewJSONSlice([]string{"Souls-like", "Open World", "Dark Fantasy", "Difficult", "RPG"}),
		},
		{
			SteamAppId:  "294100",
			Title:       "RimWorld",
			Description: "A sci-fi colony sim driven by an intelligent AI storyteller.",
			Genres:      datatypes.NewJSONSlice([]string{"Indie", "Simulation", "Strategy"}),
			Tags:        datatypes.NewJSONSlice([]string{"Colony Sim", "Base Building", "Survival", "Strategy", "Sandbox"}),
		},
		{
			SteamAppId:  "1145360",
			Title:       "Hades",
			Description: "Defy the god of the dead as you hack and slash out of the Underworld.",
			Genres:      datatypes.NewJSONSlice([]string{"Action", "Indie", "RPG"}),
			Tags:        datatypes.NewJSONSlice([]string{"Roguelike", "Action Roguelike", "Hack and Slash", "Mythology", "Indie"}),
		},
	}

	inserted := 0
	for _, game := range games {
		// Idempotent: re-running the seeder never duplicates a catalog row.
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "steam_app_id"}},
			DoNothing: true,
		}).Create(&game)
		if res.Error != nil {
			color.Red("✗ Failed to seed %s: %v", game.Title, res.Error)
			continue
		}
		if res.RowsAffected > 0 {
			inserted++
			color.Green("✓ Seeded %s (%s)", game.Title, game.SteamAppId)
		} else {
			color.Yellow("- Skipped %s (already present)", game.Title)
		}
	}

	color.Cyan("Done: %d of %d games inserted.", inserted, len(games))
}
