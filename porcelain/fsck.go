package porcelain

import "strings"

// ObjectType is a git object kind as fsck reports it.
type ObjectType string

const (
	CommitObject ObjectType = "commit"
	TreeObject   ObjectType = "tree"
	BlobObject   ObjectType = "blob"
	TagObject    ObjectType = "tag"
)

// FsckObject is one object mentioned in an integrity report.
type FsckObject struct {
	Type ObjectType
	SHA  string
	// Name is the ref/path annotation, present only when the command was
	// asked to name objects (--name-objects).
	Name string
	// Message is the free text of a warning line.
	Message string
	// In is the containing commit for tagged entries.
	In string
}

// FsckResult groups an integrity report by category. Dangling, missing,
// unreachable, and warnings are issue categories; root and tagged are
// informational.
type FsckResult struct {
	Dangling    []FsckObject
	Missing     []FsckObject
	Unreachable []FsckObject
	Warnings    []FsckObject
	Root        []FsckObject
	Tagged      []FsckObject
}

// AnyIssues reports whether the issue categories are non-empty; root and
// tagged entries alone do not count as problems.
func (r *FsckResult) AnyIssues() bool {
	return len(r.Dangling) > 0 || len(r.Missing) > 0 ||
		len(r.Unreachable) > 0 || len(r.Warnings) > 0
}

// ParseFsck decodes `git fsck` output lines of the shape
//
//	<category> <type> <sha> [(<name>)] [in <other-sha>]
//
// for the dangling/missing/unreachable/root/tagged categories, plus
// free-text warning lines.
func ParseFsck(out string) (*FsckResult, error) {
	result := &FsckResult{}
	for lineNum, line := range splitLines(out) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if err := parseFsckLine(result, out, trimmed, lineNum+1); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func parseFsckLine(result *FsckResult, out, line string, lineNum int) error {
	category, rest, _ := strings.Cut(line, " ")
	switch category {
	case "dangling":
		object, err := parseFsckObject(rest)
		if err != nil {
			return parseErrorf(out, line, lineNum, "%v", err)
		}
		result.Dangling = append(result.Dangling, *object)
	case "missing":
		object, err := parseFsckObject(rest)
		if err != nil {
			return parseErrorf(out, line, lineNum, "%v", err)
		}
		result.Missing = append(result.Missing, *object)
	case "unreachable":
		object, err := parseFsckObject(rest)
		if err != nil {
			return parseErrorf(out, line, lineNum, "%v", err)
		}
		result.Unreachable = append(result.Unreachable, *object)
	case "root":
		object, err := parseRootObject(rest)
		if err != nil {
			return parseErrorf(out, line, lineNum, "%v", err)
		}
		result.Root = append(result.Root, *object)
	case "tagged":
		object, err := parseFsckObject(rest)
		if err != nil {
			return parseErrorf(out, line, lineNum, "%v", err)
		}
		result.Tagged = append(result.Tagged, *object)
	case "warning":
		result.Warnings = append(result.Warnings, parseWarning(rest))
	default:
		return parseErrorf(out, line, lineNum, "unknown fsck category %q", category)
	}
	return nil
}

// parseFsckObject decodes `<type> <sha> [(<name>)] [in <other-sha>]`.
func parseFsckObject(rest string) (*FsckObject, error) {
	typeTok, rest, ok := strings.Cut(rest, " ")
	if !ok && typeTok == "" {
		return nil, errString("missing object type")
	}
	objectType, err := objectTypeFrom(typeTok)
	if err != nil {
		return nil, err
	}

	sha, rest, _ := strings.Cut(rest, " ")
	if !isObjectID(sha) {
		return nil, errString("bad object id " + sha)
	}

	object := &FsckObject{Type: objectType, SHA: sha}
	rest = strings.TrimSpace(rest)

	// Optional "(name)" annotation; names may contain spaces.
	if strings.HasPrefix(rest, "(") {
		closing := strings.LastIndex(rest, ")")
		if closing < 0 {
			return nil, errString("unterminated name annotation")
		}
		object.Name = rest[1:closing]
		rest = strings.TrimSpace(rest[closing+1:])
	}

	// Tagged entries carry an "in <commit>" suffix.
	if containing, found := strings.CutPrefix(rest, "in "); found {
		object.In = strings.TrimSpace(containing)
	}
	return object, nil
}

// parseRootObject decodes a root line. fsck emits `root <sha>` with no type
// field; tolerate an explicit type as well.
func parseRootObject(rest string) (*FsckObject, error) {
	first, remainder, _ := strings.Cut(rest, " ")
	if isObjectID(first) {
		return &FsckObject{Type: CommitObject, SHA: first}, nil
	}
	return parseFsckObject(first + " " + remainder)
}

// parseWarning decodes `in <type> <sha>: <msg>` when present, otherwise
// keeps the whole line as the message.
func parseWarning(rest string) FsckObject {
	if body, ok := strings.CutPrefix(rest, "in "); ok {
		typeTok, body, _ := strings.Cut(body, " ")
		if objectType, err := objectTypeFrom(typeTok); err == nil {
			sha, message, _ := strings.Cut(body, ":")
			if isObjectID(sha) {
				return FsckObject{
					Type:    objectType,
					SHA:     sha,
					Message: strings.TrimSpace(message),
				}
			}
		}
	}
	return FsckObject{Message: "warning " + rest}
}

func objectTypeFrom(token string) (ObjectType, error) {
	switch ObjectType(token) {
	case CommitObject, TreeObject, BlobObject, TagObject:
		return ObjectType(token), nil
	default:
		return "", errString("unknown object type " + token)
	}
}

// isObjectID accepts full 40-hex (or 64-hex for sha256 repositories) ids.
func isObjectID(s string) bool {
	if len(s) != 40 && len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
