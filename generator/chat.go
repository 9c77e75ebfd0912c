package generator

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Chat is a conversation handle: a system prompt followed by ordered
// user and assistant messages.
type Chat struct {
	systemPrompt string
	messages     []Message
}

func (c *Chat) SystemPrompt() string {
	return c.systemPrompt
}

func (c *Chat) AddUserMessage(text string) {
	c.messages = append(c.messages, Message{Role: RoleUser, Content: text})
}

func (c *Chat) AddAssistantMessage(text string) {
	c.messages = append(c.messages, Message{Role: RoleAssistant, Content: text})
}

func (c *Chat) Messages() []Message {
	cpy := make([]Message, len(c.messages))
	copy(cpy, c.messages)
	return cpy
}

func NewChat(systemPrompt string) *Chat {
	return &Chat{
		systemPrompt: systemPrompt,
		messages:     []Message{},
	}
}
