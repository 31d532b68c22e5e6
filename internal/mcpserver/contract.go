package mcpserver

// LayoutURI identifies the note layout resource.
const LayoutURI = "notes://layout"

// NoteLayout describes how notes are stored so that LLM consumers know what
// they are reading and writing.
const NoteLayout = `# Note Layout

Notes live in a single directory, one plain-text file per note.

## Files

- File names are generated (an upper-case UUID followed by ` + "`" + `.txt` + "`" + `).
  Never invent one: call ` + "`" + `create_note` + "`" + ` for new notes and reuse the
  filename it returns.
- Content is raw UTF-8 text. There is no header, frontmatter or markup.
- The first line is the note's title. The first non-blank line after it is
  shown as the preview line in the list.

## Ordering

- ` + "`" + `list_notes` + "`" + ` returns notes newest first.
- Saving a note moves it to the top of the list.

## Deleting

- Saving empty content deletes the note, as does ` + "`" + `delete_note` + "`" + `.
- Deleting a note that does not exist is not an error.
`
