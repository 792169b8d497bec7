package learning

// SeedCourses returns the default course catalog used before any server
// sync. The first level of each course starts unlocked; everything else
// opens through the unlock cascade.
func SeedCourses() []Course {
	return []Course{
		{
			ID:          "dsa",
			Name:        "Data Structures & Algorithms",
			Description: "Master the fundamentals of computer science",
			Icon:        "🧠",
			Color:       "#6366f1",
			Scheme:      SchemeClassic.Name,
			Levels: []Level{
				{
					ID:           "dsa-1",
					CourseID:     "dsa",
					Title:        "Introduction to Programming",
					Description:  "Learn the basics of loops and variables",
					Story:        "Your journey begins in the Valley of Variables, where you must master the ancient art of loops to unlock the next realm.",
					XPReward:     100,
					Difficulty:   DifficultyBeginner,
					Unlocked:     true,
					CurrentStage: StageLearn,
					GameConfig: &GameConfig{
						ID:           "loop-arena-1",
						Type:         "loop-arena",
						Title:        "Loop Arena: Valley of Variables",
						Description:  "Navigate through obstacles using loop patterns",
						Objective:    "Collect 10 data crystals by moving in loop patterns.",
						Controls:     "WASD or Arrow Keys to move, SPACE to jump",
						PassingScore: 10,
					},
				},
				{
					ID:           "dsa-2",
					CourseID:     "dsa",
					Title:        "Arrays & Lists",
					Description:  "Understanding data collections",
					Story:        "The Array Temple awaits. Master the power of indexed collections to continue your quest.",
					XPReward:     150,
					Difficulty:   DifficultyBeginner,
					CurrentStage: StageLearn,
					GameConfig: &GameConfig{
						ID:           "sorting-conveyor-1",
						Type:         "sorting-conveyor",
						Title:        "Sorting Conveyor: Array Temple",
						Description:  "Organize items on the conveyor belt in the correct order",
						Objective:    "Sort 15 items correctly within 60 seconds",
						Controls:     "Click and drag items to sort them",
						TimeLimit:    60,
						PassingScore: 15,
					},
				},
				{
					ID:           "dsa-3",
					CourseID:     "dsa",
					Title:        "Searching Algorithms",
					Description:  "Binary search and linear search",
					Story:        "In the Forest of Search, you must find the hidden treasures using the most efficient paths.",
					XPReward:     200,
					Difficulty:   DifficultyIntermediate,
					CurrentStage: StageLearn,
					GameConfig: &GameConfig{
						ID:           "search-challenge-1",
						Type:         "search-challenge",
						Title:        "Search Challenge: Forest of Discovery",
						Description:  "Find hidden treasures using efficient search strategies",
						Objective:    "Locate 5 hidden treasures in the forest.",
						Controls:     "Arrow keys to navigate, SPACE to search",
						TimeLimit:    90,
						PassingScore: 5,
					},
				},
			},
		},
		{
			ID:          "webdev",
			Name:        "Web Development",
			Description: "Build modern web applications",
			Icon:        "🌐",
			Color:       "#8b5cf6",
			Scheme:      SchemeExpanded.Name,
			Levels: []Level{
				{
					ID:           "web-1",
					CourseID:     "webdev",
					Title:        "HTML Basics",
					Description:  "Structure your first webpage",
					Story:        "Welcome to the HTML Kingdom! Learn to build the foundation of all web pages.",
					XPReward:     100,
					Difficulty:   DifficultyBeginner,
					Unlocked:     true,
					CurrentStage: StageNarrative,
					GameConfig: &GameConfig{
						ID:           "markup-forge-1",
						Type:         "markup-forge",
						Title:        "Markup Forge: HTML Kingdom",
						Description:  "Assemble page structures from raw elements",
						Objective:    "Forge 12 valid page fragments before the furnace cools",
						Controls:     "Click elements to place them",
						TimeLimit:    120,
						PassingScore: 12,
					},
				},
				{
					ID:           "web-2",
					CourseID:     "webdev",
					Title:        "CSS Styling",
					Description:  "Make your pages beautiful",
					Story:        "Enter the CSS Castle where colors and styles bring life to your creations.",
					XPReward:     150,
					Difficulty:   DifficultyBeginner,
					CurrentStage: StageNarrative,
					GameConfig: &GameConfig{
						ID:           "style-spectrum-1",
						Type:         "style-spectrum",
						Title:        "Style Spectrum: CSS Castle",
						Description:  "Match selectors to their targets against the clock",
						Objective:    "Resolve 10 selector puzzles",
						Controls:     "Click to match selector and element",
						TimeLimit:    90,
						PassingScore: 10,
					},
				},
				{
					ID:           "web-3",
					CourseID:     "webdev",
					Title:        "JavaScript Fundamentals",
					Description:  "Add interactivity to your sites",
					Story:        "The JavaScript Jungle holds the key to dynamic and interactive web experiences.",
					XPReward:     200,
					Difficulty:   DifficultyIntermediate,
					CurrentStage: StageNarrative,
				},
			},
		},
		{
			ID:          "aiml",
			Name:        "AI & Machine Learning",
			Description: "Explore artificial intelligence",
			Icon:        "🤖",
			Color:       "#ec4899",
			Scheme:      SchemeClassic.Name,
			Levels: []Level{
				{
					ID:           "ai-1",
					CourseID:     "aiml",
					Title:        "Introduction to AI",
					Description:  "What is artificial intelligence?",
					Story:        "Welcome to the AI Realm, where machines learn and evolve!",
					XPReward:     100,
					Difficulty:   DifficultyBeginner,
					Unlocked:     true,
					CurrentStage: StageLearn,
				},
				{
					ID:           "ai-2",
					CourseID:     "aiml",
					Title:        "Neural Networks",
					Description:  "Understanding brain-inspired computing",
					Story:        "Dive into the Neural Network Nexus and unlock the secrets of machine cognition.",
					XPReward:     150,
					Difficulty:   DifficultyIntermediate,
					CurrentStage: StageLearn,
				},
			},
		},
		{
			ID:          "cloud",
			Name:        "Cloud & DevOps",
			Description: "Deploy and scale applications",
			Icon:        "☁️",
			Color:       "#10b981",
			Scheme:      SchemeClassic.Name,
			Levels: []Level{
				{
					ID:           "cloud-1",
					CourseID:     "cloud",
					Title:        "Cloud Computing Basics",
					Description:  "Introduction to cloud platforms",
					Story:        "Ascend to the Cloud City and learn to deploy your applications to the sky!",
					XPReward:     100,
					Difficulty:   DifficultyBeginner,
					Unlocked:     true,
					CurrentStage: StageLearn,
				},
				{
					ID:           "cloud-2",
					CourseID:     "cloud",
					Title:        "Docker Containers",
					Description:  "Containerize your applications",
					Story:        "Master the art of containerization in the Docker Docks.",
					XPReward:     150,
					Difficulty:   DifficultyIntermediate,
					CurrentStage: StageLearn,
				},
			},
		},
	}
}
