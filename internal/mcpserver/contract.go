package mcpserver

// DataModel describes the records exposed through the tools so LLM
// consumers build well-formed arguments.
const DataModel = `# Notebase Data Model

All ids are caller-chosen strings and must be unique per entity.
Timestamps are assigned by the server; any value you send is ignored.

## Projects

- ` + "`id`" + `, ` + "`name`" + ` (required).
- Notes point at a project through ` + "`project_id`" + `.

## Notes

- ` + "`id`" + `, ` + "`title`" + `, ` + "`project_id`" + ` (required), ` + "`content`" + ` (may be empty), ` + "`is_pinned`" + `.
- ` + "`update_note`" + ` changes title, content and is_pinned only. The project and
  creation time never change.

## Tags

- ` + "`id`" + `, ` + "`name`" + ` (required).
- ` + "`tag_note`" + ` links a tag to a note. Linking twice stores two links.

## Tasks

- ` + "`id`" + `, ` + "`content`" + `, ` + "`note_id`" + ` (required), ` + "`completed`" + `.
- ` + "`complete_task`" + ` marks a task done (or undone with completed=false).

## Deletion

Deleting a project, note or tag leaves dependent rows in place. Remove
them yourself when that matters.
`
