package evaluator

import "fmt"

const notAvailable = "Not available"

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func buildPrompt(req Request) string {
	mathematician := orDefault(req.MathematicianProof, notAvailable)
	source := orDefault(req.Source, notAvailable)

	if req.Action == ActionHint {
		return fmt.Sprintf(`As an expert mathematics professor familiar with this proof, provide a helpful hint.

PROOF TO SOLVE: %s

MATHEMATICIAN'S APPROACH: %s

HISTORICAL CONTEXT: %s

USER'S CURRENT SOLUTION: %s

Provide a single, clear hint that guides without giving away the full solution.
The hint should help them take the next step in their reasoning.
Be concise (maximum 2-3 sentences) but mathematically precise.
Focus on the next logical step they should take.

Format your response as a simple text string without any JSON formatting.`,
			req.ReferenceSolution, mathematician, source,
			orDefault(req.UserSolution, "The user has not started yet."))
	}

	return fmt.Sprintf(`As an expert mathematics professor, evaluate this proof solution.

REFERENCE SOLUTION: %s

USER'S SOLUTION: %s

ORIGINAL MATHEMATICIAN'S APPROACH: %s

HISTORICAL CONTEXT: %s

Evaluate the user's solution on these criteria:
1. Is it correct (true/false)?
2. Is it on the right track (true/false)?
3. What percentage (0-100) of the proof is correctly completed?
4. Provide specific, constructive feedback about the solution.

Format your response as a JSON object with the following structure:
{
  "is_correct": boolean,
  "on_right_track": boolean,
  "progress": number,
  "feedback": "string with feedback"
}

Be thorough in your evaluation. Consider:
- Mathematical correctness
- Logical flow
- Completeness of steps
- Clarity of explanation
- Adherence to mathematical conventions`,
		req.ReferenceSolution, req.UserSolution, mathematician, source)
}
