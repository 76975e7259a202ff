package i18n

var englishTexts = map[TextKey]string{
	TextChooseOperation: "Choose an operation:",
	TextOptionGrayscale: "1 - Convert image to black and white",
	TextOptionMove:      "2 - Move image",
	TextEnterChoice:     "Enter 1 or 2",
	TextEnterImagePath:  "Enter the image path",
	TextEnterDestDir:    "Enter the destination folder",
	TextInvalidChoice:   "Invalid operation choice",

	TextConverted:     "Image converted successfully: %s",
	TextMoved:         "Image moved successfully: %s",
	TextErrorPrefix:   "Error: %s",
	TextFormatsHeader: "Supported formats",

	TextHistoryHeader:   "Recent operations",
	TextHistoryEmpty:    "No operations recorded yet",
	TextHistoryDisabled: "Operation history is disabled",
	TextHistoryStats:    "Total: %d, succeeded: %d, failed: %d",
	TextSucceeded:       "ok",
	TextFailed:          "failed",

	TextKindNotFound:                 "File not found",
	TextKindUnsupportedFormat:        "Unsupported file format",
	TextKindDestinationNotFound:      "Destination folder does not exist",
	TextKindDestinationNotADirectory: "Destination is not a folder",
	TextKindPermissionDenied:         "Permission denied",
	TextKindCodecError:               "Image could not be processed",
	TextKindMoveIOError:              "File could not be moved",
	TextKindCollisionLimitExceeded:   "No free file name in the destination folder",
}

var chineseTexts = map[TextKey]string{
	TextChooseOperation: "请选择操作：",
	TextOptionGrayscale: "1 - 将图片转换为黑白",
	TextOptionMove:      "2 - 移动图片",
	TextEnterChoice:     "输入 1 或 2",
	TextEnterImagePath:  "请输入图片路径",
	TextEnterDestDir:    "请输入目标文件夹",
	TextInvalidChoice:   "无效的操作选择",

	TextConverted:     "图片转换成功: %s",
	TextMoved:         "图片移动成功: %s",
	TextErrorPrefix:   "错误: %s",
	TextFormatsHeader: "支持的格式",

	TextHistoryHeader:   "最近的操作",
	TextHistoryEmpty:    "暂无操作记录",
	TextHistoryDisabled: "操作历史已禁用",
	TextHistoryStats:    "总计: %d, 成功: %d, 失败: %d",
	TextSucceeded:       "成功",
	TextFailed:          "失败",

	TextKindNotFound:                 "文件不存在",
	TextKindUnsupportedFormat:        "不支持的文件格式",
	TextKindDestinationNotFound:      "目标文件夹不存在",
	TextKindDestinationNotADirectory: "目标不是文件夹",
	TextKindPermissionDenied:         "权限不足",
	TextKindCodecError:               "图片处理失败",
	TextKindMoveIOError:              "文件移动失败",
	TextKindCollisionLimitExceeded:   "目标文件夹中没有可用的文件名",
}

var russianTexts = map[TextKey]string{
	TextChooseOperation: "Выберите нужную вам операцию:",
	TextOptionGrayscale: "1 - Преобразовать изображение в черно-белое",
	TextOptionMove:      "2 - Переместить изображение",
	TextEnterChoice:     "Введите 1 или 2",
	TextEnterImagePath:  "Введите путь к изображению",
	TextEnterDestDir:    "Введите путь к целевой папке",
	TextInvalidChoice:   "Неверный выбор операции",

	TextConverted:     "Изображение успешно преобразовано: %s",
	TextMoved:         "Изображение успешно перемещено: %s",
	TextErrorPrefix:   "Ошибка: %s",
	TextFormatsHeader: "Поддерживаемые форматы",

	TextHistoryHeader:   "Последние операции",
	TextHistoryEmpty:    "Операций пока нет",
	TextHistoryDisabled: "История операций отключена",
	TextHistoryStats:    "Всего: %d, успешно: %d, с ошибкой: %d",
	TextSucceeded:       "успех",
	TextFailed:          "ошибка",

	TextKindNotFound:                 "Файл не найден",
	TextKindUnsupportedFormat:        "Неподдерживаемый формат файла",
	TextKindDestinationNotFound:      "Целевая папка не существует",
	TextKindDestinationNotADirectory: "Путь назначения не является папкой",
	TextKindPermissionDenied:         "Нет прав доступа",
	TextKindCodecError:               "Не удалось обработать изображение",
	TextKindMoveIOError:              "Не удалось переместить файл",
	TextKindCollisionLimitExceeded:   "В целевой папке нет свободного имени файла",
}
