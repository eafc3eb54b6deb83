package intake

import "github.com/mikhail/resume-builder/internal/types"

// SampleRecord returns a fully populated intake record used to seed
// the pipeline in dev mode, so the flow can be exercised without
// typing out a form.
func SampleRecord() *types.IntakeRecord {
	return &types.IntakeRecord{
		Name:                 "Mikhail Ocampo",
		Email:                "mikhail.ocampo@sjsu.edu",
		PhoneNumber:          "6613401355",
		LinkedinProfile:      "https://www.linkedin.com/in/mikhail-ocampo/",
		GithubProfile:        "https://github.com/mikhailocampo",
		Experience:           "Software Engineer Intern at Tech Solutions Inc. - Developed web applications using React and Node.js.",
		Projects:             "Personal Portfolio Website - Created a portfolio using HTML, CSS, and JavaScript.",
		Education:            "Bachelor of Science in Computer Science, San Jose State University, Expected Graduation: May 2024.",
		Skills:               "JavaScript, Python, React, Node.js.",
		Coursework:           "Data Structures, Operating Systems, Software Engineering.",
		Certifications:       "AWS Certified Solutions Architect.",
		Involvement:          "Member of SJSU Computer Science Club.",
		Summary:              "Aspiring software engineer with skills in full-stack development and problem-solving.",
		TargetJobTitle:       "Software Engineer",
		TargetJobDescription: "Seeking a software engineering role to leverage full-stack development skills.",
	}
}
