package usecase

type SeedHost struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type SeedListing struct {
	Title         string
	Description   string
	PricePerNight string
	City          string
	MaxGuests     int
	Photos        []string
}

type SeedData struct {
	Host     SeedHost
	Listings []SeedListing
}

// DefaultSeedData is the sample catalogue loaded by the seed command.
func DefaultSeedData() SeedData {
	return SeedData{
		Host: SeedHost{
			Email:     "host@example.com",
			Password:  "password123",
			FirstName: "John",
			LastName:  "Doe",
		},
		Listings: []SeedListing{
			{
				Title:         "Luxury Beachfront Villa",
				Description:   "Beautiful 3-bedroom villa with stunning ocean views, private pool, and direct beach access. Perfect for families or groups looking for a relaxing getaway.",
				PricePerNight: "250.00",
				City:          "Miami",
				MaxGuests:     6,
				Photos: []string{
					"https://images.unsplash.com/photo-1512917774080-9991f1c4c750",
					"https://images.unsplash.com/photo-1613490493576-7fde63acd811",
				},
			},
			{
				Title:         "Downtown Modern Loft",
				Description:   "Stylish loft in the heart of the city with contemporary design, high ceilings, and all modern amenities. Walking distance to restaurants and entertainment.",
				PricePerNight: "180.00",
				City:          "New York",
				MaxGuests:     2,
				Photos: []string{
					"https://images.unsplash.com/photo-1502672260266-1c1ef2d93688",
					"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2",
				},
			},
			{
				Title:         "Cozy Mountain Cabin",
				Description:   "Charming 2-bedroom cabin nestled in the mountains. Features fireplace, hot tub, and breathtaking views. Ideal for nature lovers and winter sports enthusiasts.",
				PricePerNight: "150.00",
				City:          "Denver",
				MaxGuests:     4,
				Photos: []string{
					"https://images.unsplash.com/photo-1449158743715-0a90ebb6d2d8",
					"https://images.unsplash.com/photo-1518780664697-55e3ad937233",
				},
			},
			{
				Title:         "Seaside Cottage",
				Description:   "Quaint cottage with ocean views and private garden. Perfect for couples seeking a romantic retreat by the sea.",
				PricePerNight: "120.00",
				City:          "San Diego",
				MaxGuests:     2,
				Photos: []string{
					"https://images.unsplash.com/photo-1564501049412-61c2a3083791",
					"https://images.unsplash.com/photo-1566073771259-6a8506099945",
				},
			},
			{
				Title:         "Urban Penthouse Suite",
				Description:   "Luxury penthouse with panoramic city views, rooftop terrace, and premium furnishings. Experience city living at its finest.",
				PricePerNight: "320.00",
				City:          "Chicago",
				MaxGuests:     4,
				Photos: []string{
					"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267",
					"https://images.unsplash.com/photo-1567767292278-a4f21aa2d36e",
				},
			},
			{
				Title:         "Historic Victorian Home",
				Description:   "Beautifully restored Victorian house with period details, modern comforts, and elegant garden. A unique blend of history and luxury.",
				PricePerNight: "200.00",
				City:          "San Francisco",
				MaxGuests:     5,
				Photos: []string{
					"https://images.unsplash.com/photo-1568605114967-8130f3a36994",
					"https://images.unsplash.com/photo-1570129477492-45c003edd2be",
				},
			},
			{
				Title:         "Lakefront Retreat",
				Description:   "Peaceful 4-bedroom home on a private lake with dock, kayaks, and fire pit. Perfect for family vacations and water activities.",
				PricePerNight: "190.00",
				City:          "Austin",
				MaxGuests:     8,
				Photos: []string{
					"https://images.unsplash.com/photo-1544984243-ec57ea16fe25",
					"https://images.unsplash.com/photo-1559827260-dc66d52bef19",
				},
			},
			{
				Title:         "Desert Oasis Villa",
				Description:   "Stunning modern villa with pool, outdoor entertainment area, and mountain views. Experience luxury in the desert.",
				PricePerNight: "280.00",
				City:          "Phoenix",
				MaxGuests:     6,
				Photos: []string{
					"https://images.unsplash.com/photo-1600596542815-ffad4c1539a9",
					"https://images.unsplash.com/photo-1600607687939-ce8a6c25118c",
				},
			},
		},
	}
}
