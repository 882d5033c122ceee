package qa

import (
	"fmt"
	"strings"

	"pdfchat-backend/internal/llm"
)

// promptCharBudget caps the document text included in the prompt. Content
// past the cut is simply unavailable to the model.
const promptCharBudget = 8000

const systemInstruction = `You are a helpful assistant that answers questions about a PDF document using only the document text provided.
Rules:
1. Quote the exact supporting text from the document verbatim and wrap it in [[HIGHLIGHT]] and [[/HIGHLIGHT]] delimiters.
2. The highlighted text must be actual content from the document, never just a page number or location reference.
3. Always end your answer with a citation of the form "See page N" naming the page the quote came from.
4. If the document does not contain the answer, reply exactly: No answer found in the PDF.`

// ComposePrompt builds the system and user messages for one question.
// Pages are labeled so the model can cite them; text beyond the character
// budget is dropped and the prompt is annotated as truncated.
func ComposePrompt(pages []string, question string) llm.CompleteInput {
	var b strings.Builder
	for i, page := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Page %d]\n%s", i+1, page)
	}
	docText := b.String()

	truncated := false
	if len(docText) > promptCharBudget {
		docText = docText[:promptCharBudget]
		truncated = true
	}

	var user strings.Builder
	user.WriteString("Document text")
	if truncated {
		user.WriteString(" (truncated)")
	}
	user.WriteString(":\n\n")
	user.WriteString(docText)
	if truncated {
		user.WriteString("\n\n[The document was truncated here; content after this point is unavailable.]")
	}
	user.WriteString("\n\nQuestion: ")
	user.WriteString(question)

	return llm.CompleteInput{
		System: systemInstruction,
		User:   user.String(),
	}
}
