// CLI tool to create a user with a bcrypt-hashed password and, optionally, a
// starting profile.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"lg/adaptive-plan-api/plan"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "No .env file found, using process environment\n")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	reader := bufio.NewReader(os.Stdin)
	ask := func(prompt string) string {
		fmt.Print(prompt)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	username := ask("Username: ")
	email := ask("Email: ")
	password := ask("Password: ")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}
	authToken := uuid.New().String()

	var bio *plan.BiometricProfile
	if strings.EqualFold(ask("Add a profile now? [y/N]: "), "y") {
		p, err := readProfile(ask)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid profile: %v\n", err)
			os.Exit(1)
		}
		bio = &p
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting transaction: %v\n", err)
		os.Exit(1)
	}
	defer tx.Rollback(ctx)

	var userID int
	err = tx.QueryRow(ctx,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		username, email, string(hash), authToken,
	).Scan(&userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	if bio != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO profiles (user_id, weight_kg, height_cm, age, gender, activity_level, fitness_goal)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID, bio.WeightKg, bio.HeightCm, bio.Age,
			string(bio.Gender), string(bio.ActivityLevel), string(bio.FitnessGoal))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
			os.Exit(1)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error committing: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %d\n", userID)
	fmt.Printf("  Username:   %s\n", username)
	fmt.Printf("  Auth Token: %s\n", authToken)
	if bio != nil {
		calories, _ := plan.EstimateDailyCalories(*bio)
		fmt.Printf("  Calories:   %d kcal/day\n", calories)
	}
}

// readProfile prompts for each biometric field and validates the result.
func readProfile(ask func(string) string) (plan.BiometricProfile, error) {
	weight, err := strconv.ParseFloat(ask("Weight (kg): "), 64)
	if err != nil {
		return plan.BiometricProfile{}, fmt.Errorf("weight: %w", err)
	}
	height, err := strconv.ParseFloat(ask("Height (cm): "), 64)
	if err != nil {
		return plan.BiometricProfile{}, fmt.Errorf("height: %w", err)
	}
	age, err := strconv.Atoi(ask("Age: "))
	if err != nil {
		return plan.BiometricProfile{}, fmt.Errorf("age: %w", err)
	}
	gender, err := plan.ParseGender(ask("Gender (Male/Female): "))
	if err != nil {
		return plan.BiometricProfile{}, err
	}
	activity, err := plan.ParseActivityLevel(ask("Activity level (Sedentary … Extremely Active): "))
	if err != nil {
		return plan.BiometricProfile{}, err
	}
	goal, err := plan.ParseFitnessGoal(ask("Fitness goal (Lose Weight, Gain Muscle, Maintain Weight, Improve Endurance, General Fitness): "))
	if err != nil {
		return plan.BiometricProfile{}, err
	}
	p := plan.BiometricProfile{
		WeightKg: weight, HeightCm: height, Age: age,
		Gender: gender, ActivityLevel: activity, FitnessGoal: goal,
	}
	return p, p.Validate()
}
