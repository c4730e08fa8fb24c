package models

var (
	RewritePromptTemplate = `Rewrite this question to be detailed and optimized for semantic search.

Original: %s

Rewritten:
`

	AnswerPromptTemplate = `Use this context and answer the following question in a detailed and concise manner without any extra text or formatting.

%s

Question: %s
`
)
