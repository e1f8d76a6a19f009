// Package prompt builds the fixed instruction prompt sent to the model.
package prompt

import (
	"fmt"
	"strings"
)

const template = `You are tasked with generating a professional and concise commit message for a code change.
The commit message should follow best practices, such as being descriptive, summarizing the
purpose of the change, and adhering to the conventional commit format (if applicable).

Below, you will find:
1. **Code Diff**: A representation of the changes made in the code.
2. **Optional User Instruction**: Additional context or specific guidelines provided by the user.
   This field may be blank.

If the **Optional User Instruction** is blank, rely solely on the **Code Diff** to infer the intent
of the change and generate the commit message. If the instruction is provided, use it to enhance
or guide the commit message.

**Input Format:**

1. **Code Diff**:
` + "```" + `
%s
` + "```" + `

2. **Optional User Instruction**:
` + "```" + `
%s
` + "```" + `

**Output Format:**

Generate a commit message in the following format:

` + "```" + `
<type>: <summary>

<body>

<footer>
` + "```" + `

- ` + "`<type>`" + `: A keyword indicating the type of change (e.g., ` + "`feat`, `fix`, `docs`, `refactor`, `test`" + `).
- ` + "`<summary>`" + `: A brief description of the change, written in the imperative mood.
- ` + "`<body>`" + `: A detailed explanation of the change, if necessary.
- ` + "`<footer>`" + `: References to issues, breaking changes, or other relevant notes.

If no specific format is required, ensure the commit message is still clear, concise, and professional.
Do not return anything other than the commit message, not even any identifier, or even the thought process.`

// Build substitutes the code diff and optional user instruction into the
// template. Inputs are inserted verbatim; both may be empty. Pure and
// deterministic.
func Build(codeDiff, userInstruction string) string {
	return strings.TrimSpace(fmt.Sprintf(template, codeDiff, userInstruction))
}
