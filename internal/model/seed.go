package model

// SeedTrips returns the sample trips used when no saved collection exists.
// Each call returns a fresh slice.
func SeedTrips() []Trip {
	return []Trip{
		{
			ID:             "trip1",
			Title:          "Week in Paris",
			Destination:    "Paris, France",
			StartDate:      "2023-06-15",
			EndDate:        "2023-06-22",
			Image:          "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?q=80&w=1473&auto=format&fit=crop&ixlib=rb-4.0.3",
			Notes:          "Visit Eiffel Tower, Louvre Museum, and Notre Dame. Try croissants at Café de Flore.",
			SavedLocations: []string{"Eiffel Tower", "Louvre Museum", "Notre Dame", "Montmartre"},
			IsFavorite:     true,
		},
		{
			ID:             "trip2",
			Title:          "Tokyo Adventure",
			Destination:    "Tokyo, Japan",
			StartDate:      "2023-09-10",
			EndDate:        "2023-09-20",
			Image:          "https://images.unsplash.com/photo-1503899036084-c55cdd92da26?q=80&w=1587&auto=format&fit=crop&ixlib=rb-4.0.3",
			Notes:          "Explore Shibuya, Shinjuku, and Tokyo Tower. Try authentic ramen and sushi.",
			SavedLocations: []string{"Tokyo Tower", "Shibuya Crossing", "Senso-ji Temple"},
			IsFavorite:     false,
		},
		{
			ID:             "trip3",
			Title:          "Greek Islands Hopping",
			Destination:    "Santorini & Mykonos, Greece",
			StartDate:      "2024-07-05",
			EndDate:        "2024-07-15",
			Image:          "https://images.unsplash.com/photo-1570077188670-e3a8d69ac5ff?q=80&w=1528&auto=format&fit=crop&ixlib=rb-4.0.3",
			Notes:          "Visit the blue domes of Santorini and the windmills of Mykonos.",
			SavedLocations: []string{"Oia", "Paradise Beach", "Little Venice"},
			IsFavorite:     true,
		},
	}
}
