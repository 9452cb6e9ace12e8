package suggest

import "github.com/julianstephens/habitup/internal/models"

func tpl(category models.Category, name, description string, difficulty models.Difficulty) models.HabitTemplate {
	return models.HabitTemplate{
		Name:        name,
		Description: description,
		Category:    category,
		Difficulty:  difficulty,
	}
}

// DefaultCatalog returns the built-in habit templates in catalog order.
// The slice is freshly allocated on every call.
func DefaultCatalog() []models.HabitTemplate {
	const (
		easy   = models.DifficultyEasy
		medium = models.DifficultyMedium
		hard   = models.DifficultyHard
	)
	health := models.CategoryHealthFitness
	prod := models.CategoryProductivity
	mind := models.CategoryMindfulness
	learn := models.CategoryLearning
	social := models.CategorySocial

	return []models.HabitTemplate{
		tpl(health, "Drink 8 glasses of water", "Stay hydrated throughout the day", easy),
		tpl(health, "Exercise for 30 minutes", "Physical activity for better health", medium),
		tpl(health, "Get 8 hours of sleep", "Maintain a healthy sleep schedule", medium),
		tpl(health, "Take vitamins", "Daily vitamin supplement", easy),
		tpl(health, "Stretch for 10 minutes", "Daily stretching routine", easy),

		tpl(prod, "Plan tomorrow today", "Spend 10 minutes planning the next day", easy),
		tpl(prod, "No social media first hour", "Avoid social media for the first hour after waking", medium),
		tpl(prod, "Complete MIT (Most Important Task)", "Focus on your most important task first", medium),
		tpl(prod, "Organize workspace", "Keep your workspace clean and organized", easy),
		tpl(prod, "Time blocking", "Schedule your day in time blocks", hard),

		tpl(mind, "Meditate for 10 minutes", "Daily meditation practice", medium),
		tpl(mind, "Write in gratitude journal", "Write 3 things you're grateful for", easy),
		tpl(mind, "Practice deep breathing", "5 minutes of deep breathing exercises", easy),
		tpl(mind, "Mindful eating", "Eat at least one meal mindfully", medium),
		tpl(mind, "Digital detox hour", "One hour without any digital devices", hard),

		tpl(learn, "Read for 30 minutes", "Daily reading habit", medium),
		tpl(learn, "Learn a new word", "Expand your vocabulary daily", easy),
		tpl(learn, "Practice a skill", "Dedicate time to skill development", medium),
		tpl(learn, "Listen to educational podcast", "Learn something new through podcasts", easy),
		tpl(learn, "Write in journal", "Reflect and write daily thoughts", easy),

		tpl(social, "Call family/friends", "Stay connected with loved ones", easy),
		tpl(social, "Compliment someone", "Give a genuine compliment daily", easy),
		tpl(social, "Practice active listening", "Focus on truly listening in conversations", medium),
		tpl(social, "Random act of kindness", "Do something nice for someone", medium),
	}
}
