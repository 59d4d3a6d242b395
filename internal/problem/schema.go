package problem

import "github.com/abhisek/littlemath/internal/llm"

// Schema is the structured-output schema sent with every generation request.
var Schema = &llm.Schema{
	Name:        "math-problem",
	Description: "一道小学一年级数学选择题",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "题目编号，可留空",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "题目正文",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "4个选项，其中一个是正确答案",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "正确选项的完整文字，必须与某个选项完全一致",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "用孩子能听懂的话写的详细解析",
			},
			"category": map[string]any{
				"type":        "string",
				"description": "题目所属目录",
			},
		},
		"required": []any{"question", "options", "answer", "explanation"},
	},
}
