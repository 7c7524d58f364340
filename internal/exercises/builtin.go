package exercises

// BuiltIn returns a copy of the built-in exercise catalog.
// The catalog itself is compiled in and never changes at runtime.
func BuiltIn() Store {
	catalog := make(Store, len(builtInExercises))
	for name, def := range builtInExercises {
		catalog[name] = def
	}
	return catalog
}

func builtin(description, muscleGroup string) Definition {
	return Definition{
		Description: description,
		Media:       DefaultMedia,
		MuscleGroup: muscleGroup,
	}
}

var builtInExercises = Store{
	// chest
	"Bench Press":            builtin("A compound exercise for chest development, primarily targeting the pectoral muscles.", "Chest"),
	"Incline Bench Press":    builtin("A variation of the bench press that targets the upper portion of the pectoral muscles.", "Chest"),
	"Cable Crossovers":       builtin("An isolation exercise for the chest, performed using a cable machine.", "Chest"),
	"Dumbbell Flyes":         builtin("An isolation exercise for the chest, performed with dumbbells on a flat or incline bench.", "Chest"),
	"Decline Bench Press":    builtin("A variation of the bench press that targets the lower portion of the pectoral muscles.", "Chest"),
	"Incline Dumbbell Press": builtin("A variation of the incline press that targets the upper chest, performed with dumbbells.", "Chest"),

	// biceps
	"Bicep Curls":         builtin("An isolation exercise for the biceps, typically performed with dumbbells or a barbell.", "Biceps"),
	"Hammer Curls":        builtin("A variation of bicep curls that targets the brachialis and forearm muscles.", "Biceps"),
	"Concentration Curls": builtin("An exercise that isolates the biceps for maximum contraction and growth.", "Biceps"),
	"Preacher Curls":      builtin("An isolation exercise for the biceps, performed on a preacher bench.", "Biceps"),
	"Zottman Curls":       builtin("A bicep exercise that also targets the forearms, performed with dumbbells.", "Biceps"),

	// triceps
	"Tricep Dips":               builtin("A bodyweight exercise that targets the triceps, performed on parallel bars or a bench.", "Triceps"),
	"Tricep Extensions":         builtin("An isolation exercise for the triceps, performed with dumbbells or a cable machine.", "Triceps"),
	"Skull Crushers":            builtin("An exercise that targets the triceps, performed lying down with a barbell or dumbbells.", "Triceps"),
	"Overhead Tricep Extension": builtin("An exercise that targets the triceps, performed with a dumbbell or cable.", "Triceps"),
	"Tricep Kickbacks":          builtin("An isolation exercise for the triceps, performed with dumbbells.", "Triceps"),
	"Close Grip Bench Press":    builtin("A compound exercise that targets the triceps, performed with a barbell.", "Triceps"),

	// shoulders
	"Shoulder Press": builtin("A compound exercise for the shoulders, performed with dumbbells or a barbell.", "Shoulders"),
	"Lateral Raises": builtin("An isolation exercise for the lateral deltoids, performed with dumbbells.", "Shoulders"),
	"Front Raises":   builtin("An exercise that targets the front deltoids, performed with dumbbells or a barbell.", "Shoulders"),
	"Arnold Press":   builtin("A shoulder exercise that targets all three heads of the deltoid.", "Shoulders"),
	"Upright Rows":   builtin("An exercise that targets the shoulders and traps, performed with a barbell or dumbbells.", "Shoulders"),
	"Face Pulls":     builtin("An exercise that targets the rear deltoids and upper back, performed on a cable machine.", "Shoulders"),

	// back
	"Pull Ups":       builtin("A bodyweight exercise that targets the back, biceps, and shoulders.", "Back"),
	"Deadlifts":      builtin("A compound exercise that targets the entire posterior chain, including the back and legs.", "Back"),
	"Bent Over Rows": builtin("An exercise that targets the back muscles, performed with a barbell or dumbbells.", "Back"),
	"Lat Pulldowns":  builtin("An exercise that targets the latissimus dorsi, performed on a cable machine.", "Back"),
	"Seated Rows":    builtin("An exercise that targets the back muscles, performed on a cable machine.", "Back"),
	"T-Bar Rows":     builtin("An exercise that targets the middle back, performed with a T-bar row machine.", "Back"),

	// legs
	"Squats":                 builtin("A compound exercise that targets the legs, glutes, and core.", "Legs"),
	"Lunges":                 builtin("An exercise that targets the legs and glutes, performed with bodyweight or added resistance.", "Legs"),
	"Leg Press":              builtin("A machine-based exercise that targets the quadriceps, hamstrings, and glutes.", "Legs"),
	"Leg Extensions":         builtin("An isolation exercise for the quadriceps, performed on a leg extension machine.", "Legs"),
	"Calf Raises":            builtin("An exercise that targets the calf muscles, performed with bodyweight or added resistance.", "Legs"),
	"Leg Curls":              builtin("An isolation exercise for the hamstrings, performed on a leg curl machine.", "Legs"),
	"Bulgarian Split Squats": builtin("A single-leg exercise that targets the legs and glutes, performed with bodyweight or added resistance.", "Legs"),
}
