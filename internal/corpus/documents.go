package corpus

import "github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"

// Default returns the built-in emigration corpus used when no corpus file
// is configured.
func Default() []domain.Document {
	return []domain.Document{
		{
			Content:  "Portugal D7 visa requirements for US citizens include proof of accommodation, health insurance covering at least €30,000, and sufficient funds of approximately €7,200 annually (€600/month). The application process typically takes 60-90 days through Portuguese consulates. Required documents include passport, background check, proof of income, accommodation contract, and health insurance. The D7 visa is renewable and leads to permanent residency after 5 years.",
			Source:   "Portugal Immigration Authority 2024",
			Country:  "Portugal",
			Category: "visa_requirements",
		},
		{
			Content:  "Cost of living in Lisbon, Portugal: One-bedroom apartments range from €700-1,400/month in central areas, with utilities averaging €80-120/month. Groceries cost 30-40% less than major US cities. Public transportation is €40/month. Restaurant meals range from €8-15 for casual dining. Internet costs €25-40/month for high-speed connections.",
			Source:   "Lisbon Cost Analysis 2024",
			Country:  "Portugal",
			Category: "cost_of_living",
		},
		{
			Content:  "Spain digital nomad visa allows remote workers to live in Spain while working for foreign companies. Minimum income requirement is €2,000/month. Visa valid for up to 5 years. Required documents include employment contract, proof of income, health insurance, and criminal background check. Processing time is 15-45 days.",
			Source:   "Spain Immigration 2024",
			Country:  "Spain",
			Category: "visa_requirements",
		},
		{
			Content:  "Mexico Temporary Resident Visa for US citizens requires proof of income ($1,620/month) or bank balance ($27,000). Valid for up to 4 years, renewable. Can lead to permanent residency. Processing through Mexican consulates takes 10-20 business days. Health insurance not mandatory but recommended.",
			Source:   "Mexico Immigration 2024",
			Country:  "Mexico",
			Category: "visa_requirements",
		},
		{
			Content:  "Germany EU Blue Card for highly skilled workers requires university degree and job offer with salary €56,400+ (€43,992 for shortage occupations). Valid for 4 years, leads to permanent residency after 21 months with B1 German or 33 months with A1 German. Family reunification allowed immediately.",
			Source:   "Germany Immigration 2024",
			Country:  "Germany",
			Category: "visa_requirements",
		},
		{
			Content:  "Canada Express Entry system for skilled workers uses Comprehensive Ranking System (CRS). Minimum scores vary (typically 470-490). Requires language tests, education assessment, and proof of funds ($13,310 for single applicant). Processing time 6 months. Provincial Nominee Programs offer additional pathways.",
			Source:   "Immigration Canada 2024",
			Country:  "Canada",
			Category: "visa_requirements",
		},
		{
			Content:  "Australia skilled migration requires occupation on skilled occupation list, skills assessment, and English proficiency. SkillSelect system uses points test. Minimum investment $2,500 AUD application fee plus health exams. Processing 8-12 months. Regional visas available with lower requirements.",
			Source:   "Australia Immigration 2024",
			Country:  "Australia",
			Category: "visa_requirements",
		},
		{
			Content:  "Costa Rica Pensionado program requires $1,000/month guaranteed pension income. Provides path to permanent residency with benefits including tax exemptions on foreign income, duty-free import of household goods, and reduced healthcare costs. Application through Costa Rican consulates takes 6-12 months.",
			Source:   "Costa Rica Immigration 2024",
			Country:  "Costa Rica",
			Category: "visa_requirements",
		},
	}
}
