package plan

// Exercise is one item of a goal's workout routine. Sets/Reps or Duration
// (minutes) are set depending on the exercise.
type Exercise struct {
	Exercise string `json:"exercise"`
	Sets     int    `json:"sets,omitempty"`
	Reps     int    `json:"reps,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

var workoutCatalog = map[FitnessGoal][]Exercise{
	LoseWeight: {
		{Exercise: "Cardio (running / cycling / brisk walk)", Duration: 30},
		{Exercise: "Bodyweight Squats", Sets: 3, Reps: 15},
		{Exercise: "Push-ups", Sets: 3, Reps: 10},
		{Exercise: "Plank", Duration: 2},
	},
	GainMuscle: {
		{Exercise: "Bench Press", Sets: 4, Reps: 8},
		{Exercise: "Deadlift", Sets: 4, Reps: 6},
		{Exercise: "Pull-ups", Sets: 3, Reps: 10},
		{Exercise: "Bicep Curls", Sets: 3, Reps: 12},
	},
	MaintainWeight: {
		{Exercise: "Cardio", Duration: 20},
		{Exercise: "Bodyweight Full Body Circuit", Sets: 3, Reps: 12},
		{Exercise: "Stretching / Yoga", Duration: 15},
	},
	ImproveEndurance: {
		{Exercise: "Running / Cycling", Duration: 40},
		{Exercise: "Push-ups", Sets: 3, Reps: 15},
		{Exercise: "Squats", Sets: 3, Reps: 20},
	},
	GeneralFitness: {
		{Exercise: "Cardio", Duration: 20},
		{Exercise: "Bodyweight Squats", Sets: 3, Reps: 12},
		{Exercise: "Push-ups", Sets: 3, Reps: 10},
		{Exercise: "Stretching", Duration: 10},
	},
}

// WorkoutsFor returns a copy of the routine for goal; unknown goals get an
// empty routine.
func WorkoutsFor(goal FitnessGoal) []Exercise {
	return append([]Exercise{}, workoutCatalog[goal]...)
}
