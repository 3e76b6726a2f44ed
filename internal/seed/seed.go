package seed

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"digitalshop/internal/domain"
	categoryrepo "digitalshop/internal/repository/category"
	productrepo "digitalshop/internal/repository/product"
)

// Apply inserts the demo catalog and admin account for manual testing. It is
// idempotent via ON CONFLICT upserts.
func Apply(ctx context.Context, products productrepo.Repository, categories categoryrepo.Repository, users UserWriter) error {
	for i, name := range categoryNames {
		if _, err := categories.Upsert(ctx, domain.Category{Name: name, Position: i + 1}); err != nil {
			return fmt.Errorf("upsert category %s: %w", name, err)
		}
	}
	for _, p := range catalog {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Title, err)
		}
	}
	if err := ensureAdmin(ctx, users); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

// UserWriter is the slice of the user repository the seeder needs.
type UserWriter interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
}

func ensureAdmin(ctx context.Context, users UserWriter) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = users.Create(ctx, domain.User{
		Email:        "admin@digitalshop.local",
		PasswordHash: string(hashed),
		FullName:     "Store Admin",
		Role:         domain.RoleAdmin,
	})
	if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return err
	}
	return nil
}

// The storefront filter list, minus the synthetic "All Products" entry.
var categoryNames = []string{
	"Digital Tools",
	"AI Templates",
	"Branding Kits",
	"Marketing Resources",
	"Courses",
	"Templates",
}

var catalog = []domain.Product{
	{
		ID:          "00000000-0000-0000-0000-000000000001",
		Title:       "Marketing Dashboard Pro",
		Description: "Complete analytics and marketing automation dashboard with real-time insights and campaign tracking.",
		PriceCents:  14900,
		Category:    "Digital Tools",
		Image:       "/assets/product-4.jpg",
		Rating:      4.9,
		Reviews:     342,
		Featured:    true,
		DownloadURL: "/downloads/marketing-dashboard.zip",
		Features: []string{
			"Real-time campaign analytics",
			"Automated reporting system",
			"Multi-channel integration",
			"Custom KPI tracking",
			"Team collaboration tools",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000002",
		Title:       "AI Chatbot Templates",
		Description: "Smart chatbot templates powered by AI for customer support, lead generation, and engagement.",
		PriceCents:  9900,
		Category:    "AI Templates",
		Image:       "/assets/product-5.jpg",
		Rating:      4.8,
		Reviews:     278,
		Featured:    true,
		DownloadURL: "/downloads/ai-chatbot.zip",
		Features: []string{
			"Pre-trained conversation flows",
			"Easy customization interface",
			"Multi-language support",
			"Analytics dashboard",
			"24/7 automated responses",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000003",
		Title:       "Complete Brand Identity Kit",
		Description: "Professional branding package with logo designs, business cards, letterheads, and brand guidelines.",
		PriceCents:  19900,
		Category:    "Branding Kits",
		Image:       "/assets/product-6.jpg",
		Rating:      5.0,
		Reviews:     456,
		Featured:    true,
		DownloadURL: "/downloads/brand-kit.zip",
		Features: []string{
			"10+ logo variations",
			"Business card templates",
			"Letterhead designs",
			"Brand style guide",
			"Social media assets",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000004",
		Title:       "Social Media Content Planner",
		Description: "Organize and schedule your social media content with this comprehensive planning toolkit.",
		PriceCents:  7900,
		Category:    "Marketing Resources",
		Image:       "/assets/product-7.jpg",
		Rating:      4.7,
		Reviews:     189,
		DownloadURL: "/downloads/content-planner.zip",
		Features: []string{
			"Monthly content calendar",
			"Post scheduling templates",
			"Engagement tracking",
			"Hashtag library",
			"Performance analytics",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000005",
		Title:       "Email Marketing Suite",
		Description: "Professional email templates and automation workflows for effective email campaigns.",
		PriceCents:  12900,
		Category:    "Marketing Resources",
		Image:       "/assets/product-8.jpg",
		Rating:      4.8,
		Reviews:     312,
		DownloadURL: "/downloads/email-suite.zip",
		Features: []string{
			"50+ responsive templates",
			"Automation workflows",
			"A/B testing tools",
			"Subscriber segmentation",
			"Performance tracking",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000006",
		Title:       "SEO Optimization Toolkit",
		Description: "Complete SEO toolkit with keyword research, site audit, and ranking tracking features.",
		PriceCents:  16900,
		Category:    "Digital Tools",
		Image:       "/assets/product-9.jpg",
		Rating:      4.9,
		Reviews:     421,
		DownloadURL: "/downloads/seo-toolkit.zip",
		Features: []string{
			"Keyword research tools",
			"Site audit automation",
			"Backlink analysis",
			"Rank tracking",
			"Competitor insights",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000007",
		Title:       "Brand Style Guide Template",
		Description: "Professional brand style guide template to maintain consistent visual identity across all platforms.",
		PriceCents:  8900,
		Category:    "Branding Kits",
		Image:       "/assets/product-10.jpg",
		Rating:      4.6,
		Reviews:     203,
		DownloadURL: "/downloads/style-guide.zip",
		Features: []string{
			"Typography guidelines",
			"Color palette system",
			"Logo usage rules",
			"Brand voice guide",
			"Asset templates",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000008",
		Title:       "AI Content Generator",
		Description: "Advanced AI-powered content generation tool for blogs, social media, and marketing copy.",
		PriceCents:  14900,
		Category:    "AI Templates",
		Image:       "/assets/product-1.jpg",
		Rating:      4.9,
		Reviews:     387,
		DownloadURL: "/downloads/ai-content.zip",
		Features: []string{
			"Multi-format content generation",
			"SEO optimization",
			"Tone customization",
			"Batch processing",
			"Template library",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000009",
		Title:       "Analytics Reporting Dashboard",
		Description: "Comprehensive analytics dashboard with customizable reports and data visualization tools.",
		PriceCents:  13900,
		Category:    "Digital Tools",
		Image:       "/assets/product-11.jpg",
		Rating:      4.8,
		Reviews:     294,
		DownloadURL: "/downloads/analytics-dashboard.zip",
		Features: []string{
			"Custom report builder",
			"Interactive charts",
			"Data export options",
			"Automated scheduling",
			"Team sharing",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000010",
		Title:       "Website Design Templates",
		Description: "Modern, responsive website templates for various industries with easy customization.",
		PriceCents:  11900,
		Category:    "Templates",
		Image:       "/assets/product-2.jpg",
		Rating:      4.7,
		Reviews:     256,
		DownloadURL: "/downloads/web-templates.zip",
		Features: []string{
			"20+ template designs",
			"Fully responsive",
			"Easy customization",
			"SEO optimized",
			"Fast loading",
		},
	},
	{
		ID:          "00000000-0000-0000-0000-000000000011",
		Title:       "Business Presentation Pack",
		Description: "Professional presentation templates for business proposals, pitches, and reports.",
		PriceCents:  6900,
		Category:    "Templates",
		Image:       "/assets/product-3.jpg",
		Rating:      4.5,
		Reviews:     167,
		DownloadURL: "/downloads/presentation-pack.zip",
		Features: []string{
			"100+ slide designs",
			"Infographic elements",
			"Data charts",
			"Image placeholders",
			"Multiple themes",
		},
	},
}
