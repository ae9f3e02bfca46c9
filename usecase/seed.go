package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"talent-pipeline/intake"
)

type sample struct {
	email     string
	firstName string
	lastName  string
	fileName  string
	resume    string
	status    string
	stage     string
	answers   int
}

var samples = []sample{
	{
		email:     "sarah.chen@gmail.com",
		firstName: "Sarah",
		lastName:  "Chen",
		fileName:  "sarah_chen_resume.pdf",
		resume:    resumeChen,
		stage:     "in_conversation",
		answers:   5,
	},
	{
		email:     "michael.rodriguez@outlook.com",
		firstName: "Michael",
		lastName:  "Rodriguez",
		fileName:  "michael_rodriguez_resume.pdf",
		resume:    resumeRodriguez,
		stage:     "qualified",
	},
	{
		email:     "jennifer.patel@healthco.com",
		firstName: "Jennifer",
		lastName:  "Patel",
		fileName:  "jennifer_patel_resume.docx",
		resume:    resumePatel,
		status:    "contacted",
		stage:     "outreach_sent",
	},
	{
		email:     "david.kim@salesforce.com",
		firstName: "David",
		lastName:  "Kim",
		fileName:  "david_kim_resume.pdf",
		resume:    resumeKim,
	},
	{
		email:     "emily.johnson@startup.co",
		firstName: "Emily",
		lastName:  "Johnson",
		fileName:  "emily_johnson_resume.pdf",
		resume:    resumeJohnson,
	},
	{
		email:     "lisa.thompson@engineer.com",
		firstName: "Lisa",
		lastName:  "Thompson",
		fileName:  "lisa_thompson_resume.txt",
		resume:    resumeThompson,
	},
}

const resumeChen = `SARAH CHEN
Operating Partner, Private Equity Value Creation

Warburg Pincus, Operating Partner (2019 - Present)
Lead operational transformation initiatives across a $2B portfolio.
Drove EBITDA margin improvement at three portfolio companies.

Bain and Company, Partner (2012 - 2019)
Led due diligence and post-merger integration work for PE funds.

General Electric, VP Operations (2006 - 2012)
Lean transformation across a manufacturing division.

Harvard Business School, MBA`

const resumeRodriguez = `MICHAEL RODRIGUEZ
Chief Financial Officer

Apex Industrial Holdings, CFO (2017 - Present)
Led finance, procurement and supply chain for a sponsor-backed industrials platform.
Managed two acquisitions and the integration of both finance teams.

Deloitte, Senior Manager, Transaction Services (2009 - 2017)

Kellogg School of Management, MBA`

const resumePatel = `JENNIFER PATEL
Vice President, Revenue Operations

HealthCo Services, VP Revenue Operations (2014 - Present)
Own sales operations, pricing strategy and growth analytics for a healthcare services business.
Delivered revenue growth of 40% and a cost reduction program across regional sites.

15 years of experience in healthcare and business services.
Wharton, MBA`

const resumeKim = `DAVID KIM
Director of Sales, Enterprise SaaS

Salesforce, Director of Sales (2015 - Present)
Built enterprise sales and revenue strategy teams across North America.

Oracle, Account Executive (2010 - 2015)
Carried a technology quota for mid-market software accounts.`

const resumeJohnson = `EMILY JOHNSON
Marketing Assistant

Startup Co, Marketing Assistant (2022 - 2024)
Ran social media calendars and event logistics.

BA Communications, 2022`

const resumeThompson = `LISA THOMPSON
Staff Engineer

Acme Robotics, Staff Engineer (2012 - Present)
Designs firmware for embedded control systems.
Mentors engineers on code review practices.`

var sampleAnswers = []string{
	"I'm an Operating Partner today and want a hands-on CEO or COO seat at a portfolio company.",
	"Ten years in the PE ecosystem, first advising funds and then inside one.",
	"Rapid diagnostic in the first month, then a ranked list of quick wins and longer bets.",
	"Operations transformation, mostly in manufacturing and service delivery.",
	"CEO or COO of a sponsor-backed business between $100M and $500M in revenue.",
	"Mid-market funds, healthcare services or industrial tech.",
	"Open to relocating within the US.",
	"Base around $450K plus meaningful equity.",
	"Within the next six months.",
	"Nothing else for now.",
}

// Seed loads sample candidates through the regular intake path when the
// store is empty. It returns the number of candidates created.
func (u *CandidateUsecase) Seed(ctx context.Context) (int, error) {
	n, err := u.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.log.Info("store not empty, skipping seed", zap.Int64("candidates", n))
		return 0, nil
	}

	for _, s := range samples {
		if err := u.seedOne(ctx, s); err != nil {
			return 0, fmt.Errorf("seeding %s: %w", s.email, err)
		}
	}
	u.log.Info("seeded sample candidates", zap.Int("candidates", len(samples)))
	return len(samples), nil
}

func (u *CandidateUsecase) seedOne(ctx context.Context, s sample) error {
	c, err := u.CreateCandidate(ctx, CreateCandidateInput{
		Email:          s.email,
		FirstName:      &s.firstName,
		LastName:       &s.lastName,
		ResumeText:     s.resume,
		ResumeFileName: &s.fileName,
	})
	if err != nil {
		return err
	}
	if s.status != "" {
		if _, err := u.UpdateStatus(ctx, c.ID, s.status); err != nil {
			return err
		}
	}
	if s.stage != "" {
		if _, err := u.UpdateStage(ctx, c.ID, s.stage); err != nil {
			return err
		}
	}

	questions := intake.Questions()
	for i := 0; i < s.answers && i < len(questions); i++ {
		_, err := u.RecordIntakeResponse(ctx, RecordIntakeInput{
			CandidateID: c.ID,
			QuestionKey: questions[i].Key,
			Response:    sampleAnswers[i],
		})
		if err != nil {
			return err
		}
	}
	return nil
}
