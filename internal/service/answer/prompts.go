package answer

// PromptVersion changes whenever any template below changes.
const PromptVersion = "2023-11"

const noSourceAvailable = "no source available."

const querySystemPrompt = `You are a helpful AI assistant, generate search query for follow up question.
Make your respond simple and precise. Return the query only, do not return any other text.
e.g.
Northwind Health Plus AND standard plan.
standard plan AND dental AND employee benefit.
`

const answerSystemPrompt = "You are a system assistant who helps the company employees with their healthcare " +
	"plan questions, and questions about the employee handbook. Be brief in your answers"

// answerPromptTemplate takes the document contents.
const answerPromptTemplate = ` ## Source ##
%s
## End ##

You answer needs to be a json object with the following format.
{
    "answer": // the answer to the question, add a source reference to the end of each sentence. e.g. Apple is a fruit [reference1.pdf][reference2.pdf]. If no source available, put the answer as I don't know.
    "thoughts": // brief thoughts on how you came up with the answer, e.g. what sources you used, what you thought about, etc.
}`

const followUpSystemPrompt = "You are a helpful AI assistant"

// followUpPromptTemplate takes the answer.
const followUpPromptTemplate = `Generate three follow-up question based on the answer you just generated.
# Answer
%s

# Format of the response
Return the follow-up question as a json string list.
e.g.
[
    "What is the deductible?",
    "What is the co-pay?",
    "What is the out-of-pocket maximum?"
]`
