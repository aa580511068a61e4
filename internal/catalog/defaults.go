package catalog

func entry(order int, name, slug, desc string, keywords ...string) Entry {
	if keywords == nil {
		keywords = []string{}
	}
	return Entry{Name: name, Slug: slug, Description: desc, DisplayOrder: order, Keywords: keywords}
}

// Default returns the built-in 35 category catalog.
func Default() Catalog {
	return Catalog{
		Entries: []Entry{
			entry(1, "Content Creation", "content-creation", "AI tools for creating various types of content including text, images, and videos.", "content", "creation", "generator", "creative"),
			entry(2, "Image Generation", "image-generation", "AI tools for generating images, artwork, and graphics from text descriptions.", "image", "art", "generation", "pictures", "create", "midjourney"),
			entry(3, "Text Generation", "text-generation", "AI tools for generating text content such as articles, stories, and reports.", "text", "generation", "content", "writing", "create"),
			entry(4, "Chatbots", "chatbots", "AI chatbots and conversational agents for various purposes.", "chat", "chatbot", "conversation", "assistant", "messaging"),
			entry(5, "Writing Assistant", "writing-assistant", "AI tools that help with writing, editing, and enhancing text content.", "writing", "assistant", "editing", "grammar", "content"),
			entry(6, "Video Creation", "video-creation", "AI tools for creating and editing videos from text or images.", "video", "creation", "editing", "animation", "movie"),
			entry(7, "Audio Generation", "audio-generation", "AI tools for generating audio content including speech and music.", "audio", "generation", "speech", "music", "sound"),
			entry(8, "Code Generation", "code-generation", "AI tools that generate and assist with programming code.", "code", "programming", "development", "generation", "software"),
			entry(9, "Data Analysis", "data-analysis", "AI tools for analyzing and extracting insights from data.", "data", "analysis", "analytics", "insights", "statistics"),
			entry(10, "Productivity", "productivity", "AI tools to improve productivity and streamline workflows.", "productivity", "workflow", "efficiency", "time-saving", "automation"),
			entry(11, "Marketing", "marketing", "AI tools for marketing campaigns, SEO, and customer engagement.", "marketing", "SEO", "advertising", "promotion", "customers"),
			entry(12, "Design", "design", "AI tools for graphic design, UI/UX design, and creative work.", "design", "graphic", "UI", "UX", "creative", "logo"),
			entry(13, "Education", "education", "AI tools for learning, teaching, and educational content.", "education", "learning", "teaching", "study", "student"),
			entry(14, "Translation", "translation", "AI tools for language translation and multilingual content.", "translation", "language", "multilingual", "translator"),
			entry(15, "Research", "research", "AI tools for academic and scientific research.", "research", "academic", "scientific", "study", "investigation"),
			entry(16, "Healthcare", "healthcare", "AI tools for healthcare, medicine, and wellness.", "healthcare", "medical", "medicine", "health", "wellness"),
			entry(17, "Customer Service", "customer-service", "AI tools for customer support and service automation.", "customer", "service", "support", "helpdesk", "assistance"),
			entry(18, "Finance", "finance", "AI tools for financial analysis, planning, and management.", "finance", "financial", "money", "investment", "banking"),
			entry(19, "Legal", "legal", "AI tools for legal document analysis and legal assistance.", "legal", "law", "contract", "document", "attorney"),
			entry(20, "Social Media", "social-media", "AI tools for social media management and content creation.", "social", "media", "platform", "content", "posts"),
			entry(21, "E-commerce", "e-commerce", "AI tools for online stores and e-commerce businesses.", "ecommerce", "e-commerce", "shop", "store", "retail"),
			entry(22, "Music", "music", "AI tools for music creation, editing, and production.", "music", "audio", "sound", "composition", "production"),
			entry(23, "Gaming", "gaming", "AI tools for game development and gaming experiences.", "gaming", "game", "development", "virtual", "entertainment"),
			entry(24, "Voice Assistant", "voice-assistant", "AI voice assistants and voice command tools.", "voice", "assistant", "speech", "command", "recognition"),
			entry(25, "Automation", "automation", "AI tools for automating tasks and processes.", "automation", "automate", "workflow", "process", "robot"),
			entry(26, "Email", "email", "AI tools for email management, writing, and campaigns.", "email", "mail", "message", "communication", "inbox"),
			entry(27, "Personal Assistant", "personal-assistant", "AI personal assistants for scheduling, reminders, and tasks.", "personal", "assistant", "scheduler", "reminder", "task"),
			entry(28, "Image Editing", "image-editing", "AI tools for editing and enhancing images and photos.", "image", "editing", "photo", "enhancement", "retouching"),
			entry(29, "Sales", "sales", "AI tools for sales teams, CRM, and lead generation.", "sales", "selling", "lead", "CRM", "customer"),
			entry(30, "Speech Recognition", "speech-recognition", "AI tools for converting speech to text and understanding voice commands.", "speech", "recognition", "transcription", "voice", "audio"),
			entry(31, "Video Analysis", "video-analysis", "AI tools for analyzing and extracting information from videos.", "video", "analysis", "recognition", "detection", "extraction"),
			entry(32, "Networking", "networking", "AI tools for professional networking and connection building.", "networking", "professional", "connection", "contact", "social"),
			entry(33, "Language Learning", "language-learning", "AI tools for learning new languages and improving language skills.", "language", "learning", "foreign", "skills", "education"),
			entry(34, "SEO", "seo", "AI tools for search engine optimization and website ranking.", "SEO", "search", "optimization", "ranking", "website"),
			entry(35, "Other", "other", "Other AI tools that don't fit into the main categories."),
		},
		Subcategories: defaultSubcategories(),
	}
}

func defaultSubcategories() map[string][]string {
	return map[string][]string{
		"Content Creation":   {"Blog Content", "Social Media Content", "Marketing Content", "Creative Writing", "Content Automation", "Content Optimization", "Multimedia Content"},
		"Image Generation":   {"Portrait Generation", "Art Generation", "Background Generation", "Product Images", "Logo Design", "Icon Generation", "Pattern Generation", "3D Image Generation"},
		"Text Generation":    {"Article Writing", "Story Generation", "Copywriting", "Script Writing", "Email Writing", "Report Generation", "Resume Writing", "Technical Writing"},
		"Chatbots":           {"Customer Support Bots", "Sales Bots", "Personal Assistant Bots", "Healthcare Bots", "Education Bots", "Entertainment Bots", "FAQ Bots", "HR Bots"},
		"Writing Assistant":  {"Grammar Checking", "Style Improvement", "Paraphrasing", "Summarization", "Content Expansion", "Plagiarism Detection", "Readability Improvement"},
		"Video Creation":     {"Video Animation", "Text-to-Video", "Video Editing", "Social Media Videos", "Explainer Videos", "Product Videos", "Educational Videos", "Marketing Videos"},
		"Audio Generation":   {"Voice Synthesis", "Text-to-Speech", "Music Generation", "Sound Effects", "Podcast Creation", "Audio Editing", "Audio Enhancement"},
		"Code Generation":    {"Web Development", "App Development", "Database Queries", "API Integration", "Testing Code", "Documentation Generation", "Code Optimization", "Code Refactoring"},
		"Data Analysis":      {"Data Visualization", "Statistical Analysis", "Predictive Analytics", "Data Mining", "Business Intelligence", "Data Cleaning", "Data Extraction", "Anomaly Detection"},
		"Productivity":       {"Task Management", "Time Tracking", "Note Taking", "Calendar Management", "Project Management", "Meeting Assistance", "Focus Improvement", "Workflow Automation"},
		"Marketing":          {"Email Marketing", "Content Marketing", "Social Media Marketing", "Influencer Marketing", "Ad Creation", "Market Research", "Campaign Analysis", "Audience Targeting"},
		"Design":             {"UI Design", "UX Design", "Graphic Design", "Web Design", "Product Design", "Logo Design", "Branding", "Prototyping"},
		"Education":          {"Learning Assistance", "Study Tools", "Language Learning", "Test Preparation", "Educational Content", "Tutoring", "Knowledge Management", "Academic Research"},
		"Translation":        {"Text Translation", "Real-time Translation", "Document Translation", "Website Translation", "Multilingual Content", "Localization", "Dialect Translation", "Technical Translation"},
		"Research":           {"Literature Review", "Data Collection", "Academic Writing", "Research Summarization", "Citation Management", "Scientific Analysis", "Hypothesis Testing", "Research Planning"},
		"Healthcare":         {"Medical Diagnosis", "Patient Management", "Healthcare Administration", "Mental Health", "Medical Research", "Fitness Planning", "Diet & Nutrition", "Health Monitoring"},
		"Customer Service":   {"Help Desk", "Ticketing Systems", "Customer Feedback", "Support Automation", "Call Center", "Customer Experience", "Knowledge Base", "Complaint Resolution"},
		"Finance":            {"Financial Analysis", "Investment Planning", "Accounting", "Budgeting", "Tax Preparation", "Financial Forecasting", "Risk Assessment", "Expense Tracking"},
		"Legal":              {"Document Analysis", "Contract Review", "Legal Research", "Compliance Checking", "Case Law", "IP Management", "Legal Writing", "Regulatory Updates"},
		"Social Media":       {"Content Scheduling", "Analytics", "Engagement", "Social Listening", "Profile Management", "Hashtag Generation", "Trend Analysis", "Audience Growth"},
		"E-commerce":         {"Product Listings", "Inventory Management", "Pricing Optimization", "Customer Reviews", "Shopping Assistants", "Recommendation Systems", "Order Processing", "Marketplace Integration"},
		"Music":              {"Music Composition", "Beat Making", "Lyric Generation", "Song Structure", "Melody Creation", "Music Arrangement", "Audio Mixing", "Voice Training"},
		"Gaming":             {"Game Development", "Character Design", "Level Generation", "Game Assets", "Game Testing", "Game Storytelling", "Game AI", "Multiplayer Systems"},
		"Voice Assistant":    {"Voice Commands", "Smart Home Control", "Voice Scheduling", "Voice Navigation", "Voice Search", "Voice Reminders", "Voice Dictation", "Voice Analytics"},
		"Automation":         {"Task Automation", "Process Automation", "Workflow Management", "Data Entry Automation", "Robotic Process Automation", "Scheduling Automation", "Email Automation", "Document Processing"},
		"Email":              {"Email Writing", "Email Management", "Email Automation", "Email Marketing", "Email Analysis", "Email Scheduling", "Email Templates", "Spam Detection"},
		"Personal Assistant": {"Task Management", "Calendar Management", "Reminders", "Meeting Scheduling", "Travel Planning", "Information Lookup", "Personal Organization", "Daily Briefings"},
		"Image Editing":      {"Photo Enhancement", "Background Removal", "Color Correction", "Image Restoration", "Photo Manipulation", "Batch Processing", "Image Resizing", "Photo Filters"},
		"Sales":              {"Lead Generation", "Sales Outreach", "CRM Management", "Sales Analytics", "Deal Closing", "Sales Forecasting", "Sales Presentation", "Customer Tracking"},
		"Speech Recognition": {"Transcription", "Voice Commands", "Voice Identification", "Accent Processing", "Meeting Transcription", "Voicemail to Text", "Dictation", "Multilingual Recognition"},
		"Video Analysis":     {"Object Detection", "Facial Recognition", "Scene Analysis", "Action Recognition", "Video Summarization", "Content Moderation", "Motion Tracking", "Sport Analysis"},
		"Networking":         {"Professional Connections", "Contact Management", "Event Networking", "Industry Groups", "Talent Sourcing", "Mentorship Matching", "Job Matching", "Community Building"},
		"Language Learning":  {"Vocabulary Building", "Grammar Learning", "Conversation Practice", "Translation Assistance", "Pronunciation Training", "Language Exercises", "Reading Comprehension", "Writing Improvement"},
		"SEO":                {"Keyword Research", "Content Optimization", "Link Building", "Technical SEO", "SEO Auditing", "Ranking Tracking", "Competitor Analysis", "Local SEO"},
		"Other":              {"Miscellaneous", "Experimental", "Multi-purpose", "Specialized Tools"},
	}
}
