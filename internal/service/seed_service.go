package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Seebrasse345/mp-statement-writer/internal/models"
)

type seedStatementRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, statement *models.ApprovedStatement) error
}

type seedSubmissionRepository interface {
	CountByStatus(ctx context.Context, status models.SubmissionStatus) (int, error)
	Create(ctx context.Context, submission *models.Submission) error
	UpdateStatus(ctx context.Context, id int64, status models.SubmissionStatus) error
}

// SeedService populates the corpus with starter examples so the very first
// generation already has emulate and avoid material to draw on.
type SeedService struct {
	statements  seedStatementRepository
	submissions seedSubmissionRepository
	logger      *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(statements seedStatementRepository, submissions seedSubmissionRepository, logger *zap.Logger) *SeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeedService{statements: statements, submissions: submissions, logger: logger}
}

// Run seeds sample data when the corpus is empty. It is safe to call on
// every startup.
func (s *SeedService) Run(ctx context.Context) error {
	count, err := s.statements.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, sample := range sampleStatements {
		statement := sample
		if err := s.statements.Create(ctx, &statement); err != nil {
			return err
		}
	}

	rejectedCount, err := s.submissions.CountByStatus(ctx, models.StatusRejected)
	if err != nil {
		return err
	}
	if rejectedCount == 0 {
		for _, sample := range sampleRejected {
			submission := sample
			if err := s.submissions.Create(ctx, &submission); err != nil {
				return err
			}
			if err := s.submissions.UpdateStatus(ctx, submission.ID, models.StatusRejected); err != nil {
				return err
			}
		}
	}

	s.logger.Info("seeded sample corpus",
		zap.Int("approved", len(sampleStatements)),
		zap.Int("rejected", len(sampleRejected)),
	)
	return nil
}

var sampleStatements = []models.ApprovedStatement{
	{
		PublishedText: "I've heard from many residents across our constituency about the impact of these changes. While the government's policy aims to address national concerns, I want to assure everyone that I'm working tirelessly to ensure our local needs are properly considered and that no one is left behind. Just last week, I met with the Minister to discuss how this will affect our high street businesses and secured a commitment for additional support.",
		Topic:         "Policy Response",
		Tone:          "Empathetic/Caring",
		Source:        "Sample data",
	},
	{
		PublishedText: "The recent funding announcement is welcome news for our area. I've been lobbying ministers for months to recognize our community's specific needs, and I'm pleased to see that our voice has been heard. This £2.4 million investment will directly benefit families in Millfield, Westpark and Northside, with particular focus on improving the facilities that residents have repeatedly told me are their top priorities. I'll be holding a series of community meetings next month to ensure these funds deliver maximum impact where they're needed most.",
		Topic:         "Funding Announcement",
		Tone:          "Optimistic/Positive",
		Source:        "Sample data",
	},
	{
		PublishedText: "The safety of our community is my top priority. Following the concerning incidents in the town center last month, I've been in regular contact with our local police leadership, and I've secured a commitment for increased patrols in the affected areas. Everyone deserves to feel safe in their neighborhood, and I won't rest until this issue is properly addressed. I've also established a community safety forum that will meet monthly - the first session is on Thursday at the Community Centre, and I encourage anyone concerned to attend and have your voice heard.",
		Topic:         "Community Safety",
		Tone:          "Authoritative/Confident",
		Source:        "Sample data",
	},
	{
		PublishedText: "Our local schools are the backbone of our community, and I'm proud to support the incredible work of our teachers and staff. The challenges they face deserve recognition, which is why I've raised these concerns directly with the Education Secretary and will continue pressing for the resources our children deserve. Having visited all twelve schools in our constituency this term, I've seen firsthand both the remarkable dedication of staff and the urgent need for better funding. This isn't just about buildings or budgets – it's about giving our children the best possible start in life.",
		Topic:         "Education",
		Tone:          "Conversational/Friendly",
		Source:        "Sample data",
	},
}

var sampleRejected = []models.Submission{
	{
		OriginalText:   "The Government has announced a new infrastructure plan that will benefit the entire nation. This is good news for everyone. The plan includes funding for various projects across the country and will create jobs. I support this initiative and look forward to seeing the positive impact it will have on our economy.",
		Context:        "The constituency has several infrastructure projects that need funding, including the bypass road and bridge repairs.",
		TargetAudience: "Local residents",
		Tone:           "Neutral/Balanced",
		GeneratedText:  "The Government has announced a new infrastructure plan that will benefit the entire nation. This is good news for everyone. The plan includes funding for various projects across the country and will create jobs. I support this initiative and look forward to seeing the positive impact it will have on our economy.",
		Notes:          "Too generic, doesn't mention local context",
	},
	{
		OriginalText:   "As your Member of Parliament, I am writing to inform you about the recent announcement regarding education funding. The Department of Education has allocated additional resources to schools across the country. This development aligns with the government's commitment to improving educational standards nationwide. Should you have any queries regarding this matter, please do not hesitate to contact my office.",
		Context:        "Local schools have been facing budget cuts and three schools need urgent repairs to their buildings.",
		TargetAudience: "Parents and teachers",
		Tone:           "Formal/Professional",
		GeneratedText:  "As your Member of Parliament, I am writing to inform you about the recent announcement regarding education funding. The Department of Education has allocated additional resources to schools across the country. This development aligns with the government's commitment to improving educational standards nationwide. Should you have any queries regarding this matter, please do not hesitate to contact my office.",
		Notes:          "Too formal and impersonal, doesn't address specific local school issues",
	},
}
