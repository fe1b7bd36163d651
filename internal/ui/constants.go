package ui

// Layout constants
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// NavbarHeight is the height of the panel navigation bar
	NavbarHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// StoryItemHeight is the number of lines one story takes in a list
	StoryItemHeight = 2

	// DefaultWrapWidth is used when the terminal width is not yet known
	DefaultWrapWidth = 80
)

// Form dimensions
const (
	// FormWidth is the width of a single form panel
	FormWidth = 40

	// FormInputCharLimit is the character limit for form text inputs
	FormInputCharLimit = 256

	// FormURLCharLimit is the character limit for the story url input
	FormURLCharLimit = 2048
)
