package backend

import "fmt"

// UnitPrompt asks for a JUnit 5 test of one method of className.
func UnitPrompt(unitText, className string) string {
	return fmt.Sprintf("You are a Java testing expert.\n\n"+
		"Generate a JUnit 5 test for the following method from class `%s`. "+
		"Ensure good naming and cover edge cases. Use mocks if needed.\n\n"+
		"```java\n%s\n```\n\n"+
		"Reminder: Write the JUnit 5 test code (with imports) for the method above.",
		className, unitText)
}

// ClassPrompt asks for one JUnit 5 test class covering a small data holder.
// The whole file is sent since its methods are mostly accessors.
func ClassPrompt(fileText, className string) string {
	return fmt.Sprintf("You are a Java testing expert.\n\n"+
		"Generate a single JUnit 5 test class for the data class `%s` below. "+
		"Most of its methods are plain getters and setters: cover them together "+
		"in a few focused tests, and test any remaining methods (equals, hashCode, "+
		"toString, validation) thoroughly.\n\n"+
		"```java\n%s\n```\n\n"+
		"Reminder: Write the JUnit 5 test code (with imports) for the class above.",
		className, fileText)
}
