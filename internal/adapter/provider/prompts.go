package provider

import (
	"fmt"
	"strings"

	"github.com/probeai/interviewd/internal/domain"
)

// Prompt builders for the three reasoning calls. Each system prompt pins the
// response to a JSON object so the client can parse it structurally.

func questionSystemPrompt(qc QuestionContext) string {
	var history strings.Builder
	if len(qc.PriorTurns) > 0 {
		history.WriteString("\n\nPrevious questions and performance:\n")
		for _, t := range qc.PriorTurns {
			q := t.Question
			score := ""
			if t.Evaluation != nil {
				score = fmt.Sprintf(" (Score: %d/10)", t.Evaluation.Score)
			}
			history.WriteString(fmt.Sprintf("- Q%d [%s]: %s%s\n",
				q.QuestionNumber, q.Difficulty, truncate(q.Question, 100), score))
		}
	}

	return fmt.Sprintf(`You are an expert technical interviewer conducting a %s interview.

CANDIDATE PROFILE:
- Experience: %s
- Subject: %s
- Current Difficulty: %s
- Question: %d of %d
%s
CRITICAL RULES:
- Generate ONLY THEORETICAL/CONCEPTUAL questions
- DO NOT ask coding questions, algorithm implementation, or "write code" questions
- Focus on concepts, theory, explanations, comparisons, and "why/how/what" questions

INSTRUCTIONS:
1. Generate a single theoretical interview question appropriate for the candidate's experience level
2. Ask about concepts, definitions, comparisons, best practices, trade-offs, or explanations
3. Adapt difficulty based on previous performance (if available)
4. Cover different aspects of %s across questions
5. Be specific and clear

RESPONSE FORMAT (JSON):
{"question": "The theoretical interview question text", "topic": "Specific topic within %s", "difficulty": "%s"}

Generate only the JSON response, no additional text.`,
		qc.Subject, qc.ExperienceLevel.Description(), qc.Subject, qc.Difficulty,
		qc.QuestionNumber, qc.TotalQuestions, history.String(),
		qc.Subject, qc.Subject, qc.Difficulty)
}

func evaluationSystemPrompt(cfg domain.InterviewConfig) string {
	return fmt.Sprintf(`You are an expert technical interviewer evaluating a candidate's answer.

EVALUATION CONTEXT:
- Candidate Experience: %s
- Subject: %s

EVALUATION CRITERIA:
1. Correctness (Is the answer technically accurate?)
2. Depth (Does it show deep understanding?)
3. Clarity (Is the explanation clear and well-structured?)
4. Practical Understanding (Does it show real-world application knowledge?)

SCORING GUIDELINES:
- 1-3: Poor - Major misconceptions, incomplete, or incorrect
- 4-5: Below Average - Some correct points but significant gaps
- 6-7: Average - Correct basics, reasonable understanding
- 8-9: Good - Strong understanding, minor improvements possible
- 10: Excellent - Comprehensive, accurate, demonstrates expertise

Be fair but thorough. Consider the candidate's experience level: a junior
candidate is not expected to have the depth of a senior candidate.

RESPONSE FORMAT (JSON):
{"score": <1-10>, "correctness": "...", "depth": "...", "clarity": "...", "practical_understanding": "...", "strengths": ["..."], "areas_for_improvement": ["..."], "feedback": "..."}

Generate only the JSON response, no additional text.`,
		cfg.ExperienceLevel.Description(), cfg.Subject)
}

func evaluationUserPrompt(q domain.Question, answer string) string {
	return fmt.Sprintf(`QUESTION (%s - %s):
%s

CANDIDATE'S ANSWER:
%s

Evaluate this answer.`, q.Difficulty, q.Topic, q.Question, answer)
}

func reportSystemPrompt(cfg domain.InterviewConfig) string {
	return fmt.Sprintf(`You are an expert technical interviewer generating a comprehensive assessment report.

ASSESSMENT CONTEXT:
- Candidate Experience: %s
- Subject: %s

REPORT REQUIREMENTS:
1. Provide an overall assessment considering all answers
2. Identify patterns in strengths and weaknesses
3. Give actionable, specific recommendations for improvement
4. Be constructive and professional

HIRING RECOMMENDATION GUIDELINES (by average score):
- 8-10: "Strong Hire", 6-7: "Hire", 4-5: "Conditional Hire", 1-3: "No Hire"

RESPONSE FORMAT (JSON):
{"overall_score": <float 0-10>, "detailed_feedback": "2-3 paragraph narrative", "strong_areas": ["..."], "weak_areas": ["..."], "recommendations": ["..."], "hire_recommendation": "Strong Hire|Hire|Conditional Hire|No Hire - with brief justification"}

Generate only the JSON response, no additional text.`,
		cfg.ExperienceLevel.Description(), cfg.Subject)
}

func reportUserPrompt(turns []domain.Turn) string {
	var qa strings.Builder
	for _, t := range turns {
		answer := "No answer"
		if t.Answer != nil {
			answer = truncate(*t.Answer, 500)
		}
		score, feedback := "N/A", "N/A"
		if t.Evaluation != nil {
			score = fmt.Sprintf("%d", t.Evaluation.Score)
			feedback = t.Evaluation.Feedback
		}
		qa.WriteString(fmt.Sprintf(`
Q%d [%s] - %s:
Question: %s
Answer: %s
Score: %s/10
Feedback: %s
`, t.Question.QuestionNumber, t.Question.Difficulty, t.Question.Topic,
			t.Question.Question, answer, score, feedback))
	}

	return fmt.Sprintf(`INTERVIEW SUMMARY:
Total Questions: %d

DETAILED Q&A:
%s
Generate the final assessment report.`, len(turns), qa.String())
}

// truncate shortens a string to maxLen, appending an ellipsis when cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
