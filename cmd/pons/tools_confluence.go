package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func createListSpacesTool() mcp.Tool {
	return mcp.NewTool("confluence_list_spaces",
		mcp.WithDescription("List Confluence spaces"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum spaces to return (default: 25)"),
		),
	)
}

func createGetSpaceTool() mcp.Tool {
	return mcp.NewTool("confluence_get_space",
		mcp.WithDescription("Get a Confluence space. Cloud addresses spaces by numeric id, Server/DC by key"),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Space id (Cloud) or space key (Server/DC)"),
		),
	)
}

func createListSpacePagesTool() mcp.Tool {
	return mcp.NewTool("confluence_list_space_pages",
		mcp.WithDescription("List the pages in a Confluence space"),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Space id (Cloud) or space key (Server/DC)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum pages to return (default: 25)"),
		),
	)
}

func createListPagesTool() mcp.Tool {
	return mcp.NewTool("confluence_list_pages",
		mcp.WithDescription("List Confluence pages across the instance"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum pages to return (default: 25)"),
		),
	)
}

func createGetPageTool() mcp.Tool {
	return mcp.NewTool("confluence_get_page",
		mcp.WithDescription("Get a Confluence page with its body converted to markdown"),
		mcp.WithString("page_id",
			mcp.Required(),
			mcp.Description("Page id"),
		),
	)
}

func createCreatePageTool() mcp.Tool {
	return mcp.NewTool("confluence_create_page",
		mcp.WithDescription("Create a Confluence page"),
		mcp.WithString("space",
			mcp.Required(),
			mcp.Description("Space id (Cloud) or space key (Server/DC)"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Page title"),
		),
		mcp.WithString("body",
			mcp.Description("Page body in Confluence storage format (XHTML); plain text is accepted"),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent page id"),
		),
	)
}

func createUpdatePageTool() mcp.Tool {
	return mcp.NewTool("confluence_update_page",
		mcp.WithDescription("Update a Confluence page. The version must be the current version plus one"),
		mcp.WithString("page_id",
			mcp.Required(),
			mcp.Description("Page id"),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Page title"),
		),
		mcp.WithString("body",
			mcp.Description("New page body in storage format"),
		),
		mcp.WithNumber("version",
			mcp.Required(),
			mcp.Description("Next version number (current version + 1)"),
		),
	)
}

func createListChildPagesTool() mcp.Tool {
	return mcp.NewTool("confluence_list_child_pages",
		mcp.WithDescription("List the direct child pages of a page"),
		mcp.WithString("page_id",
			mcp.Required(),
			mcp.Description("Parent page id"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum pages to return (default: 25)"),
		),
	)
}

func createAddPageCommentTool() mcp.Tool {
	return mcp.NewTool("confluence_add_comment",
		mcp.WithDescription("Add a footer comment to a Confluence page"),
		mcp.WithString("page_id",
			mcp.Required(),
			mcp.Description("Page id"),
		),
		mcp.WithString("comment",
			mcp.Required(),
			mcp.Description("Comment text"),
		),
	)
}

func createAddLabelsTool() mcp.Tool {
	return mcp.NewTool("confluence_add_labels",
		mcp.WithDescription("Add labels to a Confluence page"),
		mcp.WithString("page_id",
			mcp.Required(),
			mcp.Description("Page id"),
		),
		mcp.WithArray("labels",
			mcp.WithStringItems(),
			mcp.Required(),
			mcp.Description("Label names to add"),
		),
	)
}

func createRemoveLabelTool() mcp.Tool {
	return mcp.NewTool("confluence_remove_label",
		mcp.WithDescription("Remove a label from a Confluence page"),
		mcp.WithString("page_id",
			mcp.Required(),
			mcp.Description("Page id"),
		),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("Label name to remove"),
		),
	)
}
