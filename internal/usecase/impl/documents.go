package impl

import (
	"time"

	"bodybalance/internal/domain/entity"
	"bodybalance/internal/domain/service"
)

// Remote timestamps travel as ISO-8601 strings (RFC 3339).
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}

// parseTimestamp decodes a remote timestamp. Missing or malformed values
// decode to the zero time, which ranks older than any real timestamp during
// last-writer-wins comparison.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}

	return t
}

// --- Document Mappers ---

// profileToDocument builds the remote profile shape. Local-only fields (the
// local key and the AI API key) are stripped here.
func profileToDocument(profile *entity.UserProfile, now time.Time) *service.ProfileDocument {
	updatedAt := profile.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	return &service.ProfileDocument{
		Name:               profile.Name,
		Gender:             string(profile.Gender),
		DateOfBirth:        profile.DateOfBirth,
		HeightCm:           profile.HeightCm,
		CurrentWeightKg:    profile.CurrentWeightKg,
		GoalWeightKg:       profile.GoalWeightKg,
		ActivityLevel:      string(profile.ActivityLevel),
		Goal:               string(profile.Goal),
		DailyPointsBudget:  profile.DailyPointsBudget,
		WeeklyPointsBudget: profile.WeeklyPointsBudget,
		WaterGoalMl:        profile.WaterGoalMl,
		OnboardingComplete: profile.OnboardingComplete,
		CreatedAt:          formatTimestamp(profile.CreatedAt),
		UpdatedAt:          formatTimestamp(updatedAt),
	}
}

func documentToProfile(doc *service.ProfileDocument) *entity.UserProfile {
	return &entity.UserProfile{
		Name:               doc.Name,
		Gender:             entity.Gender(doc.Gender),
		DateOfBirth:        doc.DateOfBirth,
		HeightCm:           doc.HeightCm,
		CurrentWeightKg:    doc.CurrentWeightKg,
		GoalWeightKg:       doc.GoalWeightKg,
		ActivityLevel:      entity.ActivityLevel(doc.ActivityLevel),
		Goal:               entity.Goal(doc.Goal),
		DailyPointsBudget:  doc.DailyPointsBudget,
		WeeklyPointsBudget: doc.WeeklyPointsBudget,
		WaterGoalMl:        doc.WaterGoalMl,
		OnboardingComplete: doc.OnboardingComplete,
		CreatedAt:          parseTimestamp(doc.CreatedAt),
		UpdatedAt:          parseTimestamp(doc.UpdatedAt),
	}
}

// foodToSnapshot flattens a food into the whitelisted shape embedded in day
// documents. A missing unit defaults to grams.
func foodToSnapshot(food *entity.FoodItem) service.FoodSnapshot {
	unit := string(food.Unit)
	if unit == "" {
		unit = string(entity.UnitGram)
	}

	return service.FoodSnapshot{
		Name:          food.Name,
		Brand:         food.Brand,
		Barcode:       food.Barcode,
		Nutrition:     food.Nutrition,
		PointsPer100g: food.PointsPer100g,
		ServingSizeG:  food.ServingSizeG,
		Unit:          unit,
		IsZeroPoint:   food.IsZeroPoint,
		Source:        string(food.Source),
	}
}

func snapshotToFood(snap service.FoodSnapshot) entity.FoodItem {
	unit := snap.Unit
	if unit == "" {
		unit = string(entity.UnitGram)
	}

	return entity.FoodItem{
		Name:          snap.Name,
		Brand:         snap.Brand,
		Barcode:       snap.Barcode,
		Nutrition:     snap.Nutrition,
		PointsPer100g: snap.PointsPer100g,
		ServingSizeG:  snap.ServingSizeG,
		Unit:          entity.Unit(unit),
		IsZeroPoint:   snap.IsZeroPoint,
		Source:        entity.FoodSource(snap.Source),
	}
}

// dayToDocument builds the full-day remote shape from a log and its entries.
func dayToDocument(log *entity.DailyLog, entries []*entity.MealEntry, now time.Time) *service.DayDocument {
	meals := make([]service.MealDocument, 0, len(entries))

	for _, entry := range entries {
		quantity := entry.Quantity
		if quantity == 0 {
			quantity = 1
		}

		meals = append(meals, service.MealDocument{
			FoodItem:  foodToSnapshot(&entry.FoodItem),
			MealType:  string(entry.MealType),
			QuantityG: entry.QuantityG,
			Quantity:  quantity,
			Points:    entry.Points,
			LoggedAt:  formatTimestamp(entry.LoggedAt),
		})
	}

	return &service.DayDocument{
		Date:             log.Date,
		TotalPointsUsed:  log.TotalPointsUsed,
		WeeklyPointsUsed: log.WeeklyPointsUsed,
		WaterMl:          log.WaterMl,
		Meals:            meals,
		UpdatedAt:        formatTimestamp(now),
	}
}

func documentToEntry(doc service.MealDocument, dailyLogID uint) *entity.MealEntry {
	quantity := doc.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return &entity.MealEntry{
		DailyLogID: dailyLogID,
		FoodItem:   snapshotToFood(doc.FoodItem),
		MealType:   entity.MealType(doc.MealType),
		QuantityG:  doc.QuantityG,
		Quantity:   quantity,
		Points:     doc.Points,
		LoggedAt:   parseTimestamp(doc.LoggedAt),
	}
}

func weightToDocument(entry *entity.WeightEntry, now time.Time) *service.WeightDocument {
	return &service.WeightDocument{
		Date:      entry.Date,
		WeightKg:  entry.WeightKg,
		Note:      entry.Note,
		UpdatedAt: formatTimestamp(now),
	}
}

func documentToWeight(doc *service.WeightDocument) *entity.WeightEntry {
	return &entity.WeightEntry{
		Date:     doc.Date,
		WeightKg: doc.WeightKg,
		Note:     doc.Note,
	}
}

func foodToDocument(food *entity.FoodItem, now time.Time) *service.FoodDocument {
	snap := foodToSnapshot(food)

	return &service.FoodDocument{
		Name:          snap.Name,
		Brand:         snap.Brand,
		Barcode:       snap.Barcode,
		Nutrition:     snap.Nutrition,
		PointsPer100g: snap.PointsPer100g,
		ServingSizeG:  snap.ServingSizeG,
		Unit:          snap.Unit,
		IsZeroPoint:   snap.IsZeroPoint,
		IsFavorite:    food.IsFavorite,
		Source:        snap.Source,
		CreatedAt:     formatTimestamp(food.CreatedAt),
		UpdatedAt:     formatTimestamp(now),
	}
}

func documentToFood(doc *service.FoodDocument) *entity.FoodItem {
	unit := doc.Unit
	if unit == "" {
		unit = string(entity.UnitGram)
	}

	return &entity.FoodItem{
		Name:          doc.Name,
		Brand:         doc.Brand,
		Barcode:       doc.Barcode,
		Nutrition:     doc.Nutrition,
		PointsPer100g: doc.PointsPer100g,
		ServingSizeG:  doc.ServingSizeG,
		Unit:          entity.Unit(unit),
		IsZeroPoint:   doc.IsZeroPoint,
		IsFavorite:    doc.IsFavorite,
		Source:        entity.FoodSource(doc.Source),
		CreatedAt:     parseTimestamp(doc.CreatedAt),
	}
}
