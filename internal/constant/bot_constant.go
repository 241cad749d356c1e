package constant

// Bot commands.
const (
	CommandStart       = "/start"
	CommandCancel      = "/cancel"
	CommandSendMsg     = "/sendmsg"
	CommandYtDownload  = "/yt_download"
	CommandDownloadURL = "/download_url"
	CommandUploadFile  = "/upload_file"
	CommandGetFile     = "/get_file"
	CommandAskAI       = "/ask_ai"
)

// Fixed reply texts.
const (
	ReplyHelp = "Hi! I'm a bot that can help you.\n\n" +
		"Commands:\n" +
		"/sendmsg - Send a message\n" +
		"/yt_download - YouTube download\n" +
		"/download_url - URL download\n" +
		"/upload_file - File upload\n" +
		"/get_file - File download\n" +
		"/ask_ai - AI chat\n" +
		"/cancel - Cancel"

	ReplyUnrecognized       = "I don't understand. Use /start to see the available commands."
	ReplyCancelled          = "Cancelled."
	ReplyNothingToCancel    = "Nothing to cancel."
	ReplyServiceUnavailable = "This service is currently unavailable. Please try again later."

	PromptRecipient = "Enter the phone number (e.g. 94712345678):"
	PromptBody      = "Enter the message:"
	PromptVideoURL  = "Enter the YouTube URL:"
	PromptURL       = "Enter the download URL:"
	PromptFile      = "Send the file:"
	PromptPin       = "Enter the PIN:"
	PromptQuery     = "Enter your question for the AI:"

	RetryRecipient = "Please enter a valid phone number."
	RetryVideoURL  = "Please enter a valid YouTube URL."
	RetryURL       = "Please enter a valid URL."
	RetryFile      = "Please send a file."
	RetryPin       = "Please enter a PIN."
	RetryQuery     = "Please enter a valid question."

	ProgressSendMsg = "Sending message..."
	ProgressVideo   = "Downloading video..."
	ProgressURL     = "Downloading file..."
	ProgressUpload  = "Storing file..."
	ProgressGetFile = "Looking up file..."
	ProgressAI      = "Preparing AI response..."

	ReplyMsgSent       = "✅ Message sent successfully!"
	ReplyMsgFailed     = "❌ Failed to send the message."
	ReplyVideoSent     = "✅ Video sent successfully!"
	ReplyVideoFailed   = "❌ Download error occurred."
	ReplyURLSent       = "✅ File sent successfully!"
	ReplyURLFailed     = "❌ Download error occurred."
	ReplyUploadFailed  = "❌ File upload failed."
	ReplyFileNotFound  = "❌ No file found for that PIN."
	ReplyGetFileFailed = "❌ File lookup failed."
	ReplyAIFailed      = "Error getting AI response. Please try again later."
)
