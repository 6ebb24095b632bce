package sampler

import "github.com/okian/meritsim/internal/domain/model"

func defaultEventNames() map[model.Category][]string {
	return map[model.Category][]string{
		model.Hackathon:          {"Smart India Hackathon", "TechFest Hackathon", "Google Solution Challenge", "Microsoft Imagine Cup", "AngelHack Global"},
		model.CodingCompetitions: {"LeetCode Weekly Contest", "CodeChef Long Challenge", "HackerRank Competition", "AtCoder Contest", "Codeforces Round"},
		model.OpenSource:         {"Hacktoberfest Contribution", "GSoC Project", "Apache Foundation PR", "Mozilla Contribution", "Linux Kernel Patch"},
		model.Research:           {"IEEE Conference Paper", "Springer Journal Publication", "ACM Conference", "Elsevier Journal", "Research Presentation"},
		model.Certifications:     {"AWS Cloud Practitioner", "Google Cloud Professional", "Microsoft Azure Fundamentals", "NPTEL Course", "Coursera Specialization"},
		model.NCCNSSYRC:          {"NCC Republic Day Camp", "NSS Special Camp", "YRC Blood Donation Drive", "NCC Adventure Training", "NSS Community Service"},
		model.Sports:             {"Inter-College Cricket Tournament", "State Basketball Championship", "National Swimming Competition", "Athletic Meet", "Table Tennis Tournament"},
		model.Workshops:          {"AI/ML Workshop by Google", "Cybersecurity Workshop", "Data Science Bootcamp", "Web Development Workshop", "Cloud Computing Training"},
		model.StudentLeadership:  {"Technical Club President", "Event Organization", "Webinar Series", "Student Council Member", "Tech Talk Series"},
		model.SocialWork:         {"Tree Plantation Drive", "NGO Teaching Program", "Disaster Relief Work", "Community Health Camp", "Educational Outreach"},
	}
}

var teamColors = []string{"Crimson", "Azure", "Emerald", "Amber", "Violet", "Indigo", "Coral", "Teal"} //nolint:gochecknoglobals // read-only word list

var repoWords = []string{"atlas", "beacon", "cobalt", "delta", "ember", "forge", "glider", "harbor"} //nolint:gochecknoglobals // read-only word list

var organizations = []string{"Infosys", "Tata Consultancy Services", "Wipro", "Zoho", "Freshworks", "HCLTech"} //nolint:gochecknoglobals // read-only word list
