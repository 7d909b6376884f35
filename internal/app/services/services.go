package services

// Services defined in this package:
// - QuestionSetService: question set CRUD and file uploads
// - DocumentService: merged PDF previews and downloads (normalize + merge)
// - BundleService: multi-set ZIP bundling with the fixed folder taxonomy
// - Normalizer / Merger: the per-file and per-batch document pipeline stages
