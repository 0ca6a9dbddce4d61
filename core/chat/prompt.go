package chat

import "fmt"

// TutorName is the assistant persona presented to students.
const TutorName = "স্মার্ট টিউটর"

const systemInstructionFmt = `You are "Smart Tutor", a friendly and helpful AI assistant for students of a school in Bangladesh.
Your name is "` + TutorName + `".
Always reply in Bengali (বাংলা).
Explain educational concepts in simple terms suitable for students.
The student you are talking to is %s, who is in class %s.
Encourage them and be polite.`

// SystemInstruction fixes the assistant's persona, output language and
// audience framing for one student.
func SystemInstruction(studentName, className string) string {
	if className == "" {
		className = "N/A"
	}
	return fmt.Sprintf(systemInstructionFmt, studentName, className)
}
