package generator

const systemPrompt = `You write case interviews for top-tier management consulting firms. You return a single JSON object and nothing else: no prose, no markdown fences.`

var difficultyGuidelines = map[string]string{
	DifficultyEasy:   "EASY means simple arithmetic, an obvious framework, clean data and one or two analysis steps.",
	DifficultyMedium: "MEDIUM means percentages and ratios, standard consulting frameworks, two or three analysis steps and some ambiguity.",
	DifficultyHard:   "HARD means multi-variable calculations, synthesis across several factors, ambiguous data and a creative framework.",
}

var mathGuidance = map[string]string{
	DifficultyEasy:   "Use only addition, subtraction, multiplication and division. Make the framework obvious and the data unambiguous.",
	DifficultyMedium: "Use percentages, growth rates and simple ratios. Require framework thinking across two or three calculation steps.",
	DifficultyHard:   "Use calculations with several variables, advanced ratios or market sizing. Leave elements open that need strategic judgement.",
}

const generationPrompt = `Create a NEW consulting case interview.

The case MUST be %[1]s difficulty. %[2]s

CASE PARAMETERS:
- Case type: %[3]s
- Difficulty: %[1]s (mandatory)
- Industry: %[4]s
- Firm style: %[5]s
- Duration: 30-40 minutes

The material below was mined from %[6]d real cases. Use it for inspiration only; do not copy it.

OPENING STATEMENT EXAMPLES:
%[7]s

EXPECTED FRAMEWORKS FOR %[3]s CASES:
%[8]s

QUANTITATIVE QUESTION PATTERNS:
%[9]s
%[10]s
CLARIFYING INFORMATION PATTERNS:
%[11]s

BRAINSTORMING PATTERNS:
%[12]s

RULES:
1. metadata.difficulty MUST be "%[13]s" and the calculations MUST match it. %[14]s
2. Clarifying information must add facts that are NOT in the opening prompt: revenue, headcount, margins, competitors, market dynamics. Include three good clarifying questions.
3. Framework guidance must list main branches, sub-branches and key questions per branch, plus a step-by-step explanation of how to apply it to this case.
4. Use realistic numbers, company names and scenarios.
5. Include two or three quantitative questions with worked solutions.
6. Include interviewer guidance: hints and common mistakes.

OUTPUT: one JSON object with these top-level keys:
{
  "metadata": {"case_type": "%[3]s", "industry": "string", "difficulty": "%[13]s", "duration": 35, "firm_style": "string", "round": 2},
  "prompt": "3-5 sentence opening statement",
  "clarifying_information": {
    "objective": "string",
    "timeline": "string",
    "client_context": {"name": "string", "business": "string", "geography": "string", "recent_situation": "string"},
    "additional_data_to_reveal": {"revenue": "string", "employees": "string", "market_position": "string", "competitive_landscape": "string", "financial_metrics": "string", "other_key_facts": "string"},
    "questions_candidate_should_ask": ["string"]
  },
  "framework_guidance": {
    "expected_frameworks": ["string"],
    "detailed_framework_structure": {
      "framework_name": "string",
      "main_branches": [{"branch_name": "string", "sub_branches": ["string"], "key_questions": ["string"]}],
      "how_to_apply": "string"
    },
    "key_factors": ["string"],
    "mece_breakdown_example": "string"
  },
  "questions": [{
    "question_number": 1,
    "question_text": "string",
    "exhibit": {"type": "table|chart|text", "title": "string", "data": {}},
    "solution": {"approach": "string", "calculation": "string", "answer": "string", "insight": "string"},
    "guidance_for_interviewer": "string"
  }],
  "brainstorming": {"prompt": "string", "categories": {"Category": ["string"]}, "strong_answers": ["string"]},
  "conclusion": {
    "recommendation_framework": {"clear_answer": "string", "key_risks": "string", "financial_impact": "string", "next_steps": "string", "timeline": "string"},
    "sample_strong_answer": "string"
  },
  "interviewer_notes": {"common_mistakes": ["string"], "hints_if_stuck": ["string"], "what_good_looks_like": "string"}
}`
