package ui

import (
	"datasync-console/internal/domain"
	"datasync-console/internal/service/chat"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const chatGreeting = "Ask about your catalogs, tables or data. I can look up metadata and run queries for you."

type chatPageData struct {
	Threads      []domain.ChatThread
	Conversation *chat.Conversation
	Suggestions  []string
	CSRF         Node
}

func chatPage(d chatPageData) Node {
	activeID := ""
	if d.Conversation != nil {
		activeID = d.Conversation.Thread.ID
	}

	return appPage("Chat", "chat",
		Div(Class("chat-layout"),
			Aside(Class("chat-threads"),
				Form(Method("post"), Action("/ui/chat"), d.CSRF,
					Button(Type("submit"), Class(primaryButtonClass()+" w-full"), Text("New chat")),
				),
				threadList(d.Threads, activeID),
			),
			Section(Class("chat-main"), chatBody(d)),
		),
	)
}

func threadList(threads []domain.ChatThread, activeID string) Node {
	if len(threads) == 0 {
		return P(Class(mutedClass()), Text("No conversations yet."))
	}
	items := make([]Node, 0, len(threads))
	for _, t := range threads {
		title := t.Title
		if title == "" {
			title = "New conversation"
		}
		className := "thread-link"
		if t.ID == activeID {
			className += " active"
		}
		items = append(items, Li(A(Href("/ui/chat/"+t.ID), Class(className),
			Span(Class("thread-title"), Text(title)),
			Span(Class(mutedClass()), Text(formatTime(t.UpdatedAt))),
		)))
	}
	return Ul(Class("thread-list"), Group(items))
}

func chatBody(d chatPageData) Node {
	action := "/ui/chat"
	var messages []domain.StoredMessage
	var header Node
	if d.Conversation != nil {
		action = "/ui/chat/" + d.Conversation.Thread.ID + "/messages"
		messages = d.Conversation.Messages
		header = Div(Class("row flex-between"),
			H2(Text(orDash(d.Conversation.Thread.Title))),
			postButton(d.CSRF, "/ui/chat/"+d.Conversation.Thread.ID+"/delete", "Delete", dangerButtonClass(), "Delete this conversation?"),
		)
	}

	var transcript Node
	if len(messages) == 0 {
		transcript = Div(Class("chat-empty"),
			P(Text(chatGreeting)),
			suggestionButtons(d.Suggestions, action, d.CSRF),
		)
	} else {
		nodes := make([]Node, 0, len(messages))
		for _, m := range messages {
			nodes = append(nodes, chatMessage(m))
		}
		transcript = Div(Class("chat-transcript"), Group(nodes))
	}

	return Group([]Node{
		header,
		transcript,
		Form(Class("chat-composer"), Method("post"), Action(action), d.CSRF,
			Label(Class("sr-only"), For("chat-message"), Text("Message")),
			Textarea(ID("chat-message"), Name("message"), Rows("3"), Required(), Placeholder("Ask a question about your data...")),
			Button(Type("submit"), Class(primaryButtonClass()), Text("Send")),
		),
	})
}

func suggestionButtons(suggestions []string, action string, csrf Node) Node {
	items := make([]Node, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, Form(Class("inline-form"), Method("post"), Action(action), csrf,
			Input(Type("hidden"), Name("message"), Value(s)),
			Button(Type("submit"), Class(secondaryButtonClass()+" suggestion"), Text(s)),
		))
	}
	return Div(Class("suggestions"), Group(items))
}

func chatMessage(m domain.StoredMessage) Node {
	var tools []Node
	for _, tr := range m.ToolResults {
		tools = append(tools, toolResultNode(tr))
	}
	return Div(Class("message message-"+m.Role),
		Div(Class("message-role "+mutedClass()), Text(m.Role)),
		Div(Class("message-content"), Text(m.Content)),
		Group(tools),
	)
}
