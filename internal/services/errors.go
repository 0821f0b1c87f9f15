package services

// Kind classifies a domain failure for transport mapping.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a domain failure whose Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Message: message}
}

var (
	ErrEmailTaken              = &Error{Kind: KindConflict, Message: "Email is already registered"}
	ErrMissingRegistration     = invalid("Name, email and password are required")
	ErrMissingCredentials      = invalid("Email and password are required")
	ErrInvalidCredentials      = &Error{Kind: KindUnauthenticated, Message: "Invalid email or password"}
	ErrAdminInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "Invalid credentials"}
	ErrAdminOnly               = &Error{Kind: KindForbidden, Message: "Access denied: Admins only"}

	ErrUserNotFound             = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrForeignProfileUpdate     = &Error{Kind: KindForbidden, Message: "Forbidden: You can only update your own profile"}
	ErrForeignProfileDelete     = &Error{Kind: KindForbidden, Message: "Forbidden: You can only delete your own profile"}
	ErrCurrentPasswordRequired  = invalid("Current password is required to update sensitive info")
	ErrCurrentPasswordIncorrect = invalid("Current password incorrect")
	ErrEmailOrNameInUse         = invalid("Email or name already in use by another user")
	ErrBlankProfileField        = invalid("Name and email cannot be empty")

	ErrPostNotFound        = &Error{Kind: KindNotFound, Message: "Post not found"}
	ErrPostBodyRequired    = invalid("Post content or media is required")
	ErrPostContentRequired = invalid("Post content required")
	ErrForeignPostEdit     = &Error{Kind: KindForbidden, Message: "Forbidden: only owner can edit post"}
	ErrForeignPostDelete   = &Error{Kind: KindForbidden, Message: "Forbidden: only owner can delete post"}
	ErrAlreadyLiked        = invalid("Post already liked")
	ErrNotLiked            = invalid("You have not liked this post")
	ErrMediaType           = invalid("Only image and video files are allowed.")
	ErrMediaEmpty          = invalid("Uploaded media file is empty")

	ErrCommentContent = invalid("Comment content is required and maximum 300 characters allowed")

	ErrMessageInvalid   = invalid("Receiver and content are required")
	ErrReceiverNotFound = &Error{Kind: KindNotFound, Message: "Receiver not found"}

	ErrInvalidReceiver       = invalid("Invalid receiver ID")
	ErrFriendRequestExists   = invalid("Friend request already sent")
	ErrFriendRequestNotFound = &Error{Kind: KindNotFound, Message: "Friend request not found"}
	ErrInvalidFriendResponse = invalid("Invalid request")
)
