package ai

import (
	"context"
	"fmt"
	"strings"
)

// DefaultQuestionCount is the number of technical questions asked per session.
const DefaultQuestionCount = 5

// questionBankOrder fixes the concatenation order when a tech stack matches
// several known technologies.
var questionBankOrder = []string{"python", "javascript", "react", "java", "sql", "aws", "devops"}

var questionBank = map[string][]string{
	"python": {
		"Can you explain the difference between a list and a tuple in Python?",
		"How do you handle exceptions in Python?",
		"What is the difference between __init__ and __new__ in Python classes?",
		"How does memory management work in Python?",
		"Can you explain decorators and provide a use case?",
	},
	"javascript": {
		"What's the difference between let, const, and var in JavaScript?",
		"Can you explain closures in JavaScript?",
		"How does prototypal inheritance work?",
		"What are Promises and how do they differ from callbacks?",
		"How would you optimize the performance of a JavaScript application?",
	},
	"react": {
		"What is the virtual DOM in React and how does it work?",
		"Explain the component lifecycle in React.",
		"What's the difference between state and props?",
		"How do you handle side effects in React components?",
		"What are hooks and how have they changed React development?",
	},
	"java": {
		"What is the difference between an interface and an abstract class in Java?",
		"How does garbage collection work in Java?",
		"Explain the principles of SOLID in Java.",
		"What are the new features introduced in Java 8?",
		"How would you handle concurrency in a Java application?",
	},
	"sql": {
		"What's the difference between INNER JOIN and LEFT JOIN?",
		"How would you optimize a slow SQL query?",
		"Explain normalization and when you might denormalize a database.",
		"What are indexes and how do they work?",
		"How would you handle large dataset operations in SQL?",
	},
	"aws": {
		"What AWS services would you use for a highly available web application?",
		"Explain the difference between EC2, ECS, and Lambda.",
		"How would you design a scalable architecture on AWS?",
		"What security best practices would you implement in AWS?",
		"How would you monitor and troubleshoot issues in an AWS environment?",
	},
	"devops": {
		"Explain the CI/CD pipeline and its benefits.",
		"What containerization technologies have you worked with?",
		"How would you handle scaling in a microservices architecture?",
		"What monitoring and alerting tools have you used?",
		"How do you approach infrastructure as code?",
	},
}

// StaticQuestionGenerator serves canned questions from a fixed lookup table.
// It is the deterministic substitute for a live question generator and the
// path taken when the tech stack matches no known technology.
type StaticQuestionGenerator struct{}

// NewStaticQuestionGenerator returns the canned question generator.
func NewStaticQuestionGenerator() *StaticQuestionGenerator {
	return &StaticQuestionGenerator{}
}

// Generate implements QuestionGenerator from the static lookup table. The
// description is scanned for known technology keywords; questions for every
// match are concatenated in bank order and truncated to count.
func (g *StaticQuestionGenerator) Generate(_ context.Context, description string, count int) ([]string, error) {
	if count <= 0 {
		count = DefaultQuestionCount
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return []string{"Could you tell me about your technical skills and experience?"}, nil
	}

	lowered := strings.ToLower(description)

	var questions []string
	for _, tech := range questionBankOrder {
		if strings.Contains(lowered, tech) {
			questions = append(questions, questionBank[tech]...)
		}
	}

	if len(questions) == 0 {
		return GenericQuestions(description), nil
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

// GenericQuestions templates five questions around an unrecognized tech stack.
func GenericQuestions(description string) []string {
	return []string{
		fmt.Sprintf("Could you explain your experience with %s?", description),
		fmt.Sprintf("What projects have you worked on using %s?", description),
		fmt.Sprintf("What challenges have you faced when working with %s?", description),
		fmt.Sprintf("How do you stay updated with the latest developments in %s?", description),
		fmt.Sprintf("Can you describe a complex problem you solved using %s?", description),
	}
}
