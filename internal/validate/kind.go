package validate

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of validatable entity kinds. Dispatching through
// the kind table replaces stringly-typed validator selection: an unknown
// kind is a programming error surfaced at the call site, not a silently
// skipped validation.
type Kind int

const (
	KindHero Kind = iota
	KindAbout
	KindServices
	KindProjects
	KindBlogPosts
	KindContact
	KindSettings
)

func (k Kind) String() string {
	switch k {
	case KindHero:
		return "hero"
	case KindAbout:
		return "about"
	case KindServices:
		return "services"
	case KindProjects:
		return "projects"
	case KindBlogPosts:
		return "blogPosts"
	case KindContact:
		return "contact"
	case KindSettings:
		return "settings"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// jsonValidator decodes raw JSON into the kind's entity shape and runs its
// validator. The returned value is the sanitized entity.
type jsonValidator func(raw []byte) (any, Result, error)

func forSingleton[T any](validate func(T) (T, Result)) jsonValidator {
	return func(raw []byte) (any, Result, error) {
		var entity T
		if err := json.Unmarshal(raw, &entity); err != nil {
			return nil, Result{}, fmt.Errorf("decode: %w", err)
		}
		sanitized, res := validate(entity)
		return sanitized, res, nil
	}
}

func forList[T any](validate func([]T) ([]T, Result)) jsonValidator {
	return func(raw []byte) (any, Result, error) {
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, Result{}, fmt.Errorf("decode: %w", err)
		}
		sanitized, res := validate(list)
		return sanitized, res, nil
	}
}

// validators maps every entity kind to its validator. Adding a kind without
// a table entry fails the first JSON(kind, ...) call loudly.
var validators = map[Kind]jsonValidator{
	KindHero:      forSingleton(Hero),
	KindAbout:     forSingleton(About),
	KindServices:  forList(ServiceList),
	KindProjects:  forList(ProjectList),
	KindBlogPosts: forList(BlogPostList),
	KindContact:   forSingleton(Contact),
	KindSettings:  forSingleton(Settings),
}

// JSON validates raw JSON as the given entity kind. The error return covers
// malformed JSON and unknown kinds only; validation failures live in Result.
func JSON(kind Kind, raw []byte) (any, Result, error) {
	v, ok := validators[kind]
	if !ok {
		return nil, Result{}, fmt.Errorf("no validator for kind %s", kind)
	}
	return v(raw)
}
