package seed

import (
	"context"

	"prism/internal/models"
	"prism/internal/store"
)

// The built-in demo accounts and posts mirror the fixtures the frontend
// was designed around, including their marketplace balances.

func demoAccounts(ctx context.Context, s *store.Store) ([]*models.User, error) {
	inputs := []store.CreateUserInput{
		{
			Name:            "John Doe",
			Username:        "johndoe",
			Email:           "john@example.com",
			Bio:             "Frontend developer passionate about creating beautiful and functional web applications.",
			Avatar:          "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			CoverImage:      "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&h=400&fit=crop",
			Website:         "https://johndoe.dev",
			Location:        "San Francisco, CA",
			Verified:        true,
			Credits:         1250,
			TotalEarnings:   5600,
			TradesCompleted: 23,
		},
		{
			Name:            "Sarah Johnson",
			Username:        "sarahj",
			Email:           "sarah@example.com",
			Bio:             "UI/UX Designer creating delightful digital experiences ✨",
			Avatar:          "https://images.unsplash.com/photo-1494790108755-2616b612b5bc?w=150&h=150&fit=crop&crop=face",
			CoverImage:      "https://images.unsplash.com/photo-1557683316-973673baf926?w=1200&h=400&fit=crop",
			Website:         "https://sarahdesigns.com",
			Location:        "New York, NY",
			Credits:         890,
			TotalEarnings:   3200,
			TradesCompleted: 15,
		},
		{
			Name:            "Mike Chen",
			Username:        "mikechen",
			Email:           "mike@example.com",
			Bio:             "Full-stack developer and coffee enthusiast ☕",
			Avatar:          "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
			CoverImage:      "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=1200&h=400&fit=crop",
			Website:         "https://mikechen.dev",
			Location:        "Austin, TX",
			Verified:        true,
			Credits:         2100,
			TotalEarnings:   8900,
			TradesCompleted: 41,
		},
		{
			Name:            "Emma Wilson",
			Username:        "emmaw",
			Email:           "emma@example.com",
			Bio:             "AI researcher exploring the future of technology 🤖",
			Avatar:          "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
			CoverImage:      "https://images.unsplash.com/photo-1557683316-973673baf926?w=1200&h=400&fit=crop",
			Location:        "London, UK",
			Verified:        true,
			Credits:         1750,
			TotalEarnings:   4200,
			TradesCompleted: 18,
		},
	}

	users := make([]*models.User, 0, len(inputs))
	for _, in := range inputs {
		user, err := s.CreateUser(ctx, in)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func demoPosts(ctx context.Context, s *store.Store, users []*models.User) error {
	if len(users) < 4 {
		return nil
	}
	john, sarah, mike, emma := users[0], users[1], users[2], users[3]

	posts := []struct {
		owner   *models.User
		content string
		media   models.Media
		listing models.Listing
	}{
		{
			owner:   sarah,
			content: "Just finished building my first app this month! 🚀 The developer experience is amazing.",
			media:   models.NoMedia(),
			listing: models.NotForSale(),
		},
		{
			owner:   mike,
			content: "Beautiful sunset from my morning hike yesterday. Nature never fails to amaze me! 🌅",
			media:   models.ImageMedia("https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=400&fit=crop"),
			listing: models.ForSale(150),
		},
		{
			owner:   emma,
			content: "Working on a new project that combines AI with web development. Excited to share more details soon! 🤖✨",
			media:   models.NoMedia(),
			listing: models.NotForSale(),
		},
		{
			owner:   john,
			content: "Just deployed my new portfolio! The performance improvements are incredible. 🚀",
			media:   models.NoMedia(),
			listing: models.NotForSale(),
		},
		{
			owner:   john,
			content: "Working on some exciting new features for my portfolio. Can't wait to share them! 🎨",
			media:   models.ImageMedia("https://images.unsplash.com/photo-1551650975-87deedd944c3?w=800&h=400&fit=crop"),
			listing: models.ForSale(200),
		},
		{
			owner:   sarah,
			content: "Check out this awesome UI design I created for a mobile app! 📱✨",
			media:   models.VideoMedia("https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4"),
			listing: models.ForSale(500),
		},
		{
			owner:   mike,
			content: "Free stock photo of modern office workspace! Great for presentations and websites. 💼",
			media:   models.ImageMedia("https://images.unsplash.com/photo-1497366216548-37526070297c?w=800&h=400&fit=crop"),
			listing: models.NotForSale(),
		},
		{
			owner:   emma,
			content: "Time-lapse video of my AI model training process. This took 3 hours! 🤖⏰",
			media:   models.VideoMedia("https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_2mb.mp4"),
			listing: models.ForSale(750),
		},
	}

	for _, p := range posts {
		if _, err := s.CreatePost(ctx, p.owner.ID, p.content, p.media, p.listing); err != nil {
			return err
		}
	}
	return nil
}
